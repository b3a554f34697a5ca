package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"vessel-orders/internal/dto"
	"vessel-orders/internal/services"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/utils"
)

type UploadController struct {
	attachmentService services.AttachmentServiceInterface
	logger            *zap.Logger
}

func NewUploadController(attachmentService services.AttachmentServiceInterface, logger *zap.Logger) *UploadController {
	return &UploadController{attachmentService: attachmentService, logger: logger}
}

func (ctrl *UploadController) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "no file was sent", apperrors.ErrBadRequest), ctrl.logger)
	}
	out, err := ctrl.attachmentService.Upload(c.Request().Context(), fileHeader)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, out, "file uploaded", http.StatusCreated)
}

func (ctrl *UploadController) Delete(c echo.Context) error {
	var payload dto.DeleteUploadDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := ctrl.attachmentService.Delete(c.Request().Context(), payload.URL); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "file deleted", http.StatusOK)
}
