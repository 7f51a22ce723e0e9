package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/ports"
)

// ErrIncompletePair is returned when Set is called with a missing user or an
// empty token. The store never holds one half of a session.
var ErrIncompletePair = errors.New("session: user and token must be set together")

// Store holds the authentication state for a single portal client: the
// signed-in user, their bearer token, and nothing else. All mutation goes
// through Set and Clear so the user/token pairing invariant cannot break,
// and both swap state under the lock so no reader observes a user without
// its token. Reads derive from live state on every call.
//
// The only side effect inside the store is the documented persistence of
// the token through the TokenStore; navigation and network calls belong to
// the web layer and the backend gateway.
type Store struct {
	clientID string
	tokens   ports.TokenStore

	mu   sync.RWMutex
	sess domain.Session
}

// NewStore creates an empty (anonymous) store for the given client ID.
// tokens may be nil, in which case nothing survives a restart.
func NewStore(clientID string, tokens ports.TokenStore) *Store {
	return &Store{clientID: clientID, tokens: tokens}
}

// Set atomically replaces the current user and token and persists the token
// for restoration across restarts. The in-memory state is updated even when
// persistence fails; the error only means the session will not survive a
// restart.
func (s *Store) Set(ctx context.Context, user *domain.User, token string) error {
	if user == nil || token == "" {
		return ErrIncompletePair
	}

	u := *user
	s.mu.Lock()
	s.sess = domain.Session{User: &u, Token: token}
	s.mu.Unlock()

	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.Save(ctx, s.clientID, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Clear drops the user and token together and removes the persisted token.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.sess = domain.Session{}
	s.mu.Unlock()

	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.Delete(ctx, s.clientID); err != nil {
		return fmt.Errorf("remove persisted token: %w", err)
	}
	return nil
}

// Current returns a snapshot of the session for pure guard evaluation.
func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

// Authenticated reports whether a session is established.
func (s *Store) Authenticated() bool {
	return s.Current().Authenticated()
}

// Role returns the current role, or the empty Role when anonymous.
func (s *Store) Role() domain.Role {
	return s.Current().Role()
}

// User returns a copy of the signed-in user, or nil when anonymous.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess.User == nil {
		return nil
	}
	u := *s.sess.User
	return &u
}

// Token returns the bearer token, or "" when anonymous.
func (s *Store) Token() string {
	return s.Current().Token
}

// UserName returns the signed-in user's name, or "" when anonymous.
func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess.User == nil {
		return ""
	}
	return s.sess.User.Username
}

// HasRole reports whether the current session holds exactly the given role.
func (s *Store) HasRole(role domain.Role) bool {
	return s.Role() == role
}

// CanAccess reports whether the current role is in the allowed set. Always
// false for anonymous sessions.
func (s *Store) CanAccess(allowed ...domain.Role) bool {
	role := s.Role()
	if role == "" {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// IsPatient reports whether a patient is signed in.
func (s *Store) IsPatient() bool { return s.HasRole(domain.RolePatient) }

// IsDoctor reports whether a doctor is signed in.
func (s *Store) IsDoctor() bool { return s.HasRole(domain.RoleDoctor) }

// IsAdmin reports whether an administrator is signed in.
func (s *Store) IsAdmin() bool { return s.HasRole(domain.RoleAdmin) }
