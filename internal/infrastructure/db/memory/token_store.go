// Package memory provides an in-process TokenStore used in tests and when
// no Redis address is configured. Tokens do not survive a restart.
package memory

import (
	"context"
	"sync"
)

type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]string)}
}

func (s *TokenStore) Save(_ context.Context, clientID, token string) error {
	s.mu.Lock()
	s.tokens[clientID] = token
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Load(_ context.Context, clientID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[clientID], nil
}

func (s *TokenStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	delete(s.tokens, clientID)
	s.mu.Unlock()
	return nil
}
