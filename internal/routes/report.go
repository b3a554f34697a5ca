package routes

import (
	"github.com/labstack/echo/v4"

	"vessel-orders/internal/controllers"
)

func runReportRouter(secureGroup *echo.Group, ctrl *controllers.ReportController) {
	secureGroup.GET("/reports/orders.xlsx", ctrl.OrdersXLSX)
}

// the websocket handshake authenticates itself through ?token=
func runWebSocketRouter(api *echo.Group, ctrl *controllers.WebSocketController) {
	api.GET("/ws", ctrl.ServeWs)
}
