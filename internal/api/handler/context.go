package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rachitkhandelwal41/hospital-portal/internal/api/middleware"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/session"
)

// ctxSession extracts the session store bound by the session middleware and
// fast-fails when it is missing; handlers must never run without it.
func ctxSession(c echo.Context) (*session.Store, error) {
	st := middleware.SessionFromContext(c)
	if st == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not resolved")
	}
	return st, nil
}
