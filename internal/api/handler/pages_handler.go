package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/navigation"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/ports"
)

// PagesHandler serves the role-gated pages. Most are thin rendered shells;
// the guards in front of the route decide who sees them.
type PagesHandler struct {
	gateway ports.Gateway
	log     zerolog.Logger
}

func NewPagesHandler(gateway ports.Gateway, log zerolog.Logger) *PagesHandler {
	return &PagesHandler{gateway: gateway, log: log}
}

// Page returns a handler that renders a titled scaffold page.
func (h *PagesHandler) Page(title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "page.html", newPageData(c, title))
	}
}

// Departments renders the admin department list from the backend. The
// request goes out with the admin's bearer token attached; an in-flight
// authorization failure propagates so the error handler can navigate
// (session already cleared on 401, kept on 403). Other failures degrade to
// the static fallback list.
func (h *PagesHandler) Departments(c echo.Context) error {
	deps, err := h.gateway.Departments(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrForbidden) {
			return err
		}
		h.log.Warn().Err(err).Msg("departments fetch failed, serving fallback list")
		deps = domain.FallbackDepartments()
	}

	data := newPageData(c, "Departments")
	data.Departments = deps
	return c.Render(http.StatusOK, "departments.html", data)
}

// Root sends the bare origin to the sign-in page; the anonymous-only guard
// there bounces signed-in users on to their dashboard.
func (h *PagesHandler) Root(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, navigation.PathSignIn)
}
