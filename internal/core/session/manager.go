package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/ports"
)

// Manager owns one Store per portal client, keyed by the opaque client ID
// carried in the browser cookie. The first time a client ID is seen after a
// process restart, the Manager tries to restore the session from the
// persisted token: locally rejecting tokens whose JWT expiry has passed,
// otherwise probing the backend's /api/auth/me endpoint.
type Manager struct {
	tokens  ports.TokenStore
	gateway ports.Gateway
	log     zerolog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a Manager backed by the given token store and gateway.
func NewManager(tokens ports.TokenStore, gateway ports.Gateway, log zerolog.Logger) *Manager {
	return &Manager{
		tokens:  tokens,
		gateway: gateway,
		log:     log,
		stores:  make(map[string]*Store),
	}
}

// Store returns the session store for the client, creating and restoring it
// on first sight. The returned store is shared by all requests carrying the
// same client ID.
func (m *Manager) Store(ctx context.Context, clientID string) *Store {
	m.mu.Lock()
	st, ok := m.stores[clientID]
	if !ok {
		st = NewStore(clientID, m.tokens)
		m.stores[clientID] = st
	}
	m.mu.Unlock()

	if !ok {
		m.restore(ctx, st, clientID)
	}
	return st
}

// Drop forgets the in-memory store for a client. The persisted token is not
// touched; use Store.Clear for a real logout.
func (m *Manager) Drop(clientID string) {
	m.mu.Lock()
	delete(m.stores, clientID)
	m.mu.Unlock()
}

// restore re-establishes a session from a persisted token. Failures leave
// the store anonymous; only a definitive backend rejection removes the
// persisted token, so a transient outage does not log the user out.
func (m *Manager) restore(ctx context.Context, st *Store, clientID string) {
	if m.tokens == nil || m.gateway == nil {
		return
	}

	token, err := m.tokens.Load(ctx, clientID)
	if err != nil {
		m.log.Warn().Err(err).Msg("session restore: token load failed")
		return
	}
	if token == "" {
		return
	}

	if tokenExpired(token) {
		m.log.Debug().Msg("session restore: persisted token expired")
		if err := m.tokens.Delete(ctx, clientID); err != nil {
			m.log.Warn().Err(err).Msg("session restore: stale token removal failed")
		}
		return
	}

	user, err := m.gateway.Me(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrForbidden) {
			if cerr := st.Clear(ctx); cerr != nil {
				m.log.Warn().Err(cerr).Msg("session restore: clear failed")
			}
			return
		}
		m.log.Warn().Err(err).Msg("session restore: identity probe failed")
		return
	}

	if err := st.Set(ctx, user, token); err != nil {
		m.log.Warn().Err(err).Msg("session restore: set failed")
	}
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the backend's job. Opaque or claimless tokens
// are not treated as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
