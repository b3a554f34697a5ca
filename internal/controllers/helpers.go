package controllers

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/utils"
)

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewInvalidInputError("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// bindAndValidate decodes the request body into payload and runs its validate tags.
func bindAndValidate(c echo.Context, payload interface{}) error {
	if err := c.Bind(payload); err != nil {
		return apperrors.NewInvalidInputError("malformed request body")
	}
	return c.Validate(payload)
}

// orderFilter reads filter[status], filter[priority] and search.
func orderFilter(params utils.QueryParams) (dto.OrderFilter, error) {
	filter := dto.OrderFilter{Search: params.Search, Limit: params.Limit, Offset: params.Offset}
	if code, ok := params.Filters["status"]; ok {
		status, err := authz.ParseStatus(strings.ToUpper(code))
		if err != nil {
			return filter, apperrors.NewInvalidInputError("unknown status %q", code)
		}
		filter.Status = status
	}
	if code, ok := params.Filters["priority"]; ok {
		priority := entities.Priority(strings.ToUpper(code))
		if !priority.IsValid() {
			return filter, apperrors.NewInvalidInputError("unknown priority %q", code)
		}
		filter.Priority = priority
	}
	return filter, nil
}

func userFilter(params utils.QueryParams) (dto.UserFilter, error) {
	filter := dto.UserFilter{Search: params.Search, Limit: params.Limit, Offset: params.Offset}
	if code, ok := params.Filters["role"]; ok {
		role, err := authz.ParseRole(strings.ToUpper(code))
		if err != nil {
			return filter, apperrors.NewInvalidInputError("unknown role %q", code)
		}
		filter.Role = role
	}
	if code, ok := params.Filters["sector"]; ok {
		sector, err := authz.ParseSector(strings.ToUpper(code))
		if err != nil {
			return filter, apperrors.NewInvalidInputError("unknown sector %q", code)
		}
		filter.Sector = sector
	}
	return filter, nil
}
