package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"vessel-orders/internal/services"
	"vessel-orders/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// OrdersXLSX accepts the same filters as the order list.
func (c *ReportController) OrdersXLSX(ctx echo.Context) error {
	filter, err := orderFilter(utils.ParseQuery(ctx.QueryParams()))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	// buffered so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := c.reportService.WriteOrdersReport(ctx.Request().Context(), filter, &buf); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("service_orders_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
