package main

import "vessel-orders/internal/cli"

func main() {
	cli.Execute()
}
