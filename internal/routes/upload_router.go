package routes

import (
	"github.com/labstack/echo/v4"

	"vessel-orders/internal/controllers"
)

func runUploadRouter(secureGroup *echo.Group, ctrl *controllers.UploadController) {
	secureGroup.POST("/uploads", ctrl.Upload)
	secureGroup.DELETE("/uploads", ctrl.Delete)
}

func runPreferenceRouter(secureGroup *echo.Group, ctrl *controllers.PreferenceController) {
	secureGroup.GET("/dashboard-preferences", ctrl.Get)
	secureGroup.POST("/dashboard-preferences", ctrl.Save)
}
