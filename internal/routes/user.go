package routes

import (
	"github.com/labstack/echo/v4"

	"vessel-orders/internal/controllers"
)

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController) {
	users := secureGroup.Group("/users")
	users.GET("", ctrl.GetUsers)
	users.POST("", ctrl.CreateUser)
	users.GET("/:id", ctrl.FindUser)
	users.PUT("/:id", ctrl.UpdateUser)
	users.DELETE("/:id", ctrl.DeleteUser)
	users.PUT("/:id/password", ctrl.ResetPassword)
}
