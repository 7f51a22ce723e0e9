package ports

import (
	"context"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
)

// Gateway is the outbound interface to the hospital-management backend.
// Login and Register are the unauthenticated endpoints; Me relies on the
// bearer token attached by the transport decorator.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, string, error)
	Me(ctx context.Context, token string) (*domain.User, error)
	Departments(ctx context.Context) ([]domain.Department, error)
}
