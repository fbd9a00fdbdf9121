package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/gateway"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps typed gateway errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// Proxy handlers normally respond directly; this is the backstop that keeps
// any escaped error from producing a non-JSON response.
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

	// Typed gateway errors → deterministic HTTP codes.
	var (
		authErr      *gateway.AuthenticationError
		validErr     *gateway.ValidationError
		requestErr   *gateway.ClientRequestError
		upstreamErr  *gateway.ServerError
		transportErr *gateway.TransportError
	)
	switch {
	case errors.Is(err, gateway.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired"
	case errors.As(err, &authErr):
		return authErr.Status, authErr.Message
	case errors.As(err, &validErr):
		return http.StatusBadRequest, validErr.Error()
	case errors.As(err, &requestErr):
		return requestErr.Status, requestErr.Body
	case errors.As(err, &upstreamErr):
		return upstreamErr.Status, "backend error"
	case errors.As(err, &transportErr):
		log.Error().Err(err).Str("path", c.Path()).Msg("upstream unreachable")
		return http.StatusInternalServerError, "internal server error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
