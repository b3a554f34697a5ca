package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"vessel-orders/internal/dto"
	"vessel-orders/internal/services"
	"vessel-orders/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) errorResponse(ctx echo.Context, err error) error {
	return utils.ErrorResponse(ctx, err, c.logger)
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	params := utils.ParseQuery(ctx.QueryParams())
	filter, err := userFilter(params)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	users, total, err := c.userService.GetUsers(ctx.Request().Context(), filter)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.PagedResponse(ctx, users, params, total)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	user, err := c.userService.FindUser(ctx.Request().Context(), id)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, user, "user loaded", http.StatusOK)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	user, err := c.userService.CreateUser(ctx.Request().Context(), payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, user, "user created", http.StatusCreated)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	var payload dto.UpdateUserDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	user, err := c.userService.UpdateUser(ctx.Request().Context(), id, payload)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, user, "user updated", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	if err := c.userService.DeleteUser(ctx.Request().Context(), id); err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "user deleted", http.StatusOK)
}

func (c *UserController) ResetPassword(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.errorResponse(ctx, err)
	}
	var payload dto.ResetPasswordDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	if err := c.userService.ResetPassword(ctx.Request().Context(), id, payload); err != nil {
		return c.errorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "password reset", http.StatusOK)
}
