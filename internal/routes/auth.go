package routes

import (
	"github.com/labstack/echo/v4"

	"vessel-orders/internal/controllers"
)

func runAuthRouter(api, secureGroup *echo.Group, ctrl *controllers.AuthController) {
	api.POST("/auth/login", ctrl.Login)
	api.POST("/auth/refresh", ctrl.RefreshToken)
	api.POST("/register", ctrl.Register)

	secureGroup.GET("/auth/me", ctrl.Me)
	secureGroup.PUT("/auth/password", ctrl.ChangePassword)
}
