package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// errorBody is the canonical error envelope for all API errors. Details is
// only populated for validation failures, one entry per violated field rule.
type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes and
//     stable, user-visible messages.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorBody) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorBody{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Structured validation failures carry every violated field rule.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorBody{Error: "Validation failed", Details: ve.Violations}
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return http.StatusBadRequest, errorBody{Error: stockErr.Error()}
	}

	// Known domain errors → deterministic status codes and stable messages.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorBody{Error: "Invalid email or password"}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, errorBody{Error: "Too many login attempts. Please try again later"}
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, errorBody{Error: "Email already exists"}
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, errorBody{Error: "Username already exists"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorBody{Error: "User not found"}
	case errors.Is(err, domain.ErrSweetNotFound):
		return http.StatusNotFound, errorBody{Error: "Sweet not found"}
	case errors.Is(err, domain.ErrSweetExists):
		return http.StatusConflict, errorBody{Error: "Sweet with this name already exists"}
	case errors.Is(err, domain.ErrInvalidSweetID):
		return http.StatusBadRequest, errorBody{Error: "Invalid sweet ID format"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorBody{Error: "forbidden"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorBody{Error: "internal server error"}
}
