package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/navigation"
)

// errorResponse is the canonical error envelope for non-page errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Turns in-flight authorization failures into navigation: an expired
//     session goes to sign-in (the interceptor has already cleared it), a
//     forbidden resource goes back to the portal root with the session kept.
//   - Maps echo's own errors to their status codes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch {
		case errors.Is(err, domain.ErrSessionExpired):
			_ = c.Redirect(http.StatusSeeOther, navigation.PathSignIn)
			return
		case errors.Is(err, domain.ErrForbidden):
			_ = c.Redirect(http.StatusSeeOther, navigation.PathRoot)
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
