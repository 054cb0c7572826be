package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, "email already exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusBadRequest, "invalid password"
	case errors.Is(err, domain.ErrAccountBanned):
		return http.StatusForbidden, "account is banned"
	case errors.Is(err, domain.ErrInvalidPin):
		return http.StatusBadRequest, "invalid pin"
	case errors.Is(err, domain.ErrOtpNotFound):
		return http.StatusBadRequest, "otp expired or invalid"
	case errors.Is(err, domain.ErrOtpExpired):
		return http.StatusBadRequest, "otp expired"
	case errors.Is(err, domain.ErrOtpInvalid):
		return http.StatusBadRequest, "invalid otp"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "wait before resend"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrCheckInNotFound):
		return http.StatusNotFound, "no check-in for today"
	case errors.Is(err, domain.ErrJournalEntryNotFound):
		return http.StatusNotFound, "journal entry not found"
	case errors.Is(err, domain.ErrOnboardingNotFound):
		return http.StatusNotFound, "onboarding not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
