package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	apperrors "vessel-orders/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       uint64 `json:"page"`
	Limit      uint64 `json:"limit"`
	TotalPages uint64 `json:"total_pages"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// PagedResponse wraps a list with its pagination block.
func PagedResponse(ctx echo.Context, list interface{}, params QueryParams, total uint64) error {
	p := Pagination{TotalCount: total, Page: params.Page, Limit: params.Limit}
	if params.Limit > 0 {
		p.TotalPages = (total + params.Limit - 1) / params.Limit
	}
	body := map[string]interface{}{"list": list, "pagination": p}
	return ctx.JSON(http.StatusOK, &HTTPResponse{Status: true, Body: body, Message: "ok"})
}

var statusBySentinel = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrConflict, http.StatusConflict},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrTokenNotYetValid, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotAccess, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotRefresh, http.StatusUnauthorized},
	{apperrors.ErrUserIDNotFoundInContext, http.StatusUnauthorized},
	{apperrors.ErrAccountLocked, http.StatusTooManyRequests},
	{apperrors.ErrForbidden, http.StatusForbidden},
}

// StatusCode maps an error to the HTTP status the API answers with.
func StatusCode(err error) int {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest
	}
	// A policy engine fed an unknown enum is a server bug, not a client mistake.
	var authzErr *authz.ValidationError
	if errors.As(err, &authzErr) {
		return http.StatusInternalServerError
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return http.StatusInternalServerError
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code := StatusCode(err)
	message := err.Error()

	var httpErr *apperrors.HttpError
	var vErrs validator.ValidationErrors
	var authzErr *authz.ValidationError
	var denied *authz.DeniedError
	switch {
	case errors.As(err, &httpErr):
		message = httpErr.Message
		if httpErr.Err != nil {
			logger.Error("http error", zap.Int("code", code), zap.String("message", message), zap.Error(httpErr.Err))
		}
	case errors.As(err, &vErrs):
		msgs := make([]string, 0, len(vErrs))
		for _, e := range vErrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", e.Field(), e.Tag()))
		}
		message = "validation failed: " + strings.Join(msgs, "; ")
	case errors.As(err, &authzErr):
		logger.Error("authorization engine received invalid input", zap.Error(err))
		message = http.StatusText(http.StatusInternalServerError)
	case errors.As(err, &denied):
		logger.Info("request denied by policy", zap.String("reason", denied.Reason), zap.String("uri", c.Request().RequestURI))
		message = denied.Reason
	case code == http.StatusInternalServerError:
		logger.Error("unexpected error", zap.Error(err))
		message = http.StatusText(http.StatusInternalServerError)
	}

	return c.JSON(code, &HTTPResponse{Status: false, Message: message})
}
