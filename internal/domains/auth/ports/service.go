package ports

import (
	"context"

	"github.com/Apurer/storefront-admin/internal/domains/auth/domain"
)

// Service authenticates admins and tracks their sessions.
type Service interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Authenticate(ctx context.Context, token string) (domain.Session, error)
	Logout(ctx context.Context, token string) error
}
