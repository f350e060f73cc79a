package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-admin/internal/domains/auth/domain"
)

var (
	ErrAdminNotFound   = errors.New("admin not found")
	ErrSessionNotFound = errors.New("session not found")
)

type AdminRepository interface {
	Save(ctx context.Context, admin *domain.Admin) error
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

// SessionStore abstracts session persistence keyed by token.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
	// PurgeExpired removes expired sessions and reports how many were dropped.
	PurgeExpired(ctx context.Context) (int64, error)
}
