package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/testbot/testbot-api/internal/api/handler"
	"github.com/testbot/testbot-api/internal/core/domain"
)

// errorResponse is the envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// to status codes and renders {"message", "error"}. Client errors carry the
// domain message; server errors carry the operation message plus the cause,
// and are logged.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error) (int, errorResponse) {
	// Echo's own errors (bind failures, unknown route, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	cause := err
	message := "internal server error"
	var f *handler.Failure
	if errors.As(err, &f) {
		message = f.Message
		if f.Err != nil {
			cause = f.Err
		}
	}

	if code, ok := statusFor(cause); ok {
		return code, errorResponse{Message: cause.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Message: message, Error: cause.Error()}
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrIdempotencyReused):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, true
	}
	return 0, false
}
