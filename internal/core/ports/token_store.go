package ports

import "context"

// TokenStore persists bearer tokens across portal restarts, keyed by the
// opaque client ID from the browser cookie. Load returns an empty string
// (and no error) when nothing is stored for the client.
type TokenStore interface {
	Save(ctx context.Context, clientID, token string) error
	Load(ctx context.Context, clientID string) (string, error)
	Delete(ctx context.Context, clientID string) error
}
