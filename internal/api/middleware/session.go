package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/session"
	"github.com/rachitkhandelwal41/hospital-portal/internal/infrastructure/backend"
)

// sessionContextKey is the echo context key the resolved store lives under.
const sessionContextKey = "session"

// CookieOptions controls the client-identity cookie.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Session resolves the client's session store from the identity cookie,
// issuing a fresh cookie on first contact, and binds the store both into the
// echo context (for guards, handlers, and the navbar) and into the request
// context (for the outbound bearer transport).
func Session(mgr *session.Manager, opts CookieOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := ""
			if cookie, err := c.Cookie(opts.Name); err == nil {
				clientID = cookie.Value
			}
			if clientID == "" {
				clientID = newClientID()
				c.SetCookie(&http.Cookie{
					Name:     opts.Name,
					Value:    clientID,
					Path:     "/",
					MaxAge:   int(opts.TTL.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			st := mgr.Store(c.Request().Context(), clientID)
			c.Set(sessionContextKey, st)

			req := c.Request()
			c.SetRequest(req.WithContext(backend.WithSession(req.Context(), st)))

			return next(c)
		}
	}
}

// SessionFromContext returns the store bound by the Session middleware, or
// nil when the middleware did not run.
func SessionFromContext(c echo.Context) *session.Store {
	st, _ := c.Get(sessionContextKey).(*session.Store)
	return st
}

func newClientID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
