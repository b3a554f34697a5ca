package services

import (
	"context"

	"vessel-orders/pkg/eventbus"
)

// EventPublisher is the slice of the event bus services need.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}
