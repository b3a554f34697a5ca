package routes

import (
	"github.com/labstack/echo/v4"

	"vessel-orders/internal/controllers"
)

func runOrderRouter(secureGroup *echo.Group, ctrl *controllers.OrderController) {
	orders := secureGroup.Group("/orders")
	orders.GET("", ctrl.GetOrders)
	orders.POST("", ctrl.CreateOrder)
	orders.GET("/:id", ctrl.FindOrder)
	orders.PUT("/:id", ctrl.UpdateOrder)
	orders.PATCH("/:id", ctrl.UpdateOrder)
	orders.DELETE("/:id", ctrl.DeleteOrder)
	orders.GET("/:id/transitions", ctrl.AllowedTransitions)
	orders.GET("/:id/history", ctrl.History)
}
