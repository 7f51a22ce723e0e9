package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rachitkhandelwal41/hospital-portal/internal/api/metrics"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/navigation"
)

// AnonymousOnly protects the sign-in and sign-up pages: signed-in users are
// sent to their own dashboard instead.
func AnonymousOnly() echo.MiddlewareFunc {
	return guard("anonymous_only", navigation.AnonymousOnly)
}

// Authenticated protects every page that requires a session.
func Authenticated() echo.MiddlewareFunc {
	return guard("authenticated", navigation.Authenticated)
}

// RequireRole protects a role-specific section. Composes conjunctively with
// Authenticated; authentication is re-checked first so the anonymous case
// still lands on sign-in when RequireRole is used alone.
func RequireRole(allowed ...domain.Role) echo.MiddlewareFunc {
	return guard("role", func(sess domain.Session) navigation.Decision {
		return navigation.RequireRole(sess, allowed...)
	})
}

// guard adapts a pure navigation decision into echo middleware: the decision
// stays side-effect free, the redirect happens here.
func guard(name string, decide func(domain.Session) navigation.Decision) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := SessionFromContext(c)
			if st == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
			}

			d := decide(st.Current())
			if !d.Allowed {
				metrics.GuardDenialsTotal.WithLabelValues(name).Inc()
				return c.Redirect(http.StatusSeeOther, d.RedirectTo)
			}
			return next(c)
		}
	}
}
