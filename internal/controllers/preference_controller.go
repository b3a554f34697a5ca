package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"vessel-orders/internal/dto"
	"vessel-orders/internal/services"
	"vessel-orders/pkg/utils"
)

type PreferenceController struct {
	preferenceService services.PreferenceServiceInterface
	logger            *zap.Logger
}

func NewPreferenceController(preferenceService services.PreferenceServiceInterface, logger *zap.Logger) *PreferenceController {
	return &PreferenceController{preferenceService: preferenceService, logger: logger}
}

func (c *PreferenceController) Get(ctx echo.Context) error {
	pref, err := c.preferenceService.Get(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pref, "dashboard preferences", http.StatusOK)
}

func (c *PreferenceController) Save(ctx echo.Context) error {
	var payload dto.DashboardPreferenceDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	pref, err := c.preferenceService.Save(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pref, "dashboard preferences saved", http.StatusOK)
}
