package backend

import (
	"context"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/session"
)

type contextKey int

const (
	sessionContextKey contextKey = iota
	tokenContextKey
)

// WithSession binds the client's session store to outbound calls so the
// transport decorators can read the live token and, on a 401, clear the
// session that issued the request.
func WithSession(ctx context.Context, st *session.Store) context.Context {
	return context.WithValue(ctx, sessionContextKey, st)
}

func sessionFromContext(ctx context.Context) *session.Store {
	st, _ := ctx.Value(sessionContextKey).(*session.Store)
	return st
}

// WithToken overrides the bearer token for outbound calls. Used during
// session restore, when a candidate token exists but no session holds it yet.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
