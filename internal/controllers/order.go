package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"vessel-orders/internal/dto"
	"vessel-orders/internal/services"
	"vessel-orders/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

func (c *OrderController) errorResponse(ctx echo.Context, err error) error {
	return utils.ErrorResponse(ctx, err, c.logger)
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	params := utils.ParseQuery(ctx.QueryParams())
	filter, err := orderFilter(params)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	orders, total, err := c.orderService.GetOrders(ctx.Request().Context(), filter)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.PagedResponse(ctx, orders, params, total)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	order, err := c.orderService.FindOrder(ctx.Request().Context(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "service order loaded", http.StatusOK)
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	var payload dto.CreateOrderDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	order, err := c.orderService.CreateOrder(ctx.Request().Context(), payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "service order created", http.StatusCreated)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	var payload dto.UpdateOrderDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	order, err := c.orderService.UpdateOrder(ctx.Request().Context(), id, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "service order updated", http.StatusOK)
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	if err := c.orderService.DeleteOrder(ctx.Request().Context(), id); err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "service order deleted", http.StatusOK)
}

func (c *OrderController) AllowedTransitions(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	out, err := c.orderService.AllowedTransitions(ctx.Request().Context(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, out, "allowed transitions", http.StatusOK)
}

func (c *OrderController) History(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	out, err := c.orderService.History(ctx.Request().Context(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, out, "status history", http.StatusOK)
}
