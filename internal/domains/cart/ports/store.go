package ports

import (
	"context"

	"github.com/Apurer/storefront-admin/internal/domains/cart/domain"
)

// Store keeps one cart per session token.
type Store interface {
	// Load returns the session's cart, or an empty cart when none exists yet.
	Load(ctx context.Context, token string) (*domain.Cart, error)
	Save(ctx context.Context, token string, cart *domain.Cart) error
	Delete(ctx context.Context, token string) error
}

// Service exposes the cart use cases for one session.
type Service interface {
	View(ctx context.Context, token string) (domain.Totals, error)
	Add(ctx context.Context, token string, itemID int64, qty int) (domain.Totals, error)
	Remove(ctx context.Context, token string, itemID int64) (domain.Totals, error)
	Clear(ctx context.Context, token string) error
	// Lines returns the raw cart contents, used by checkout.
	Lines(ctx context.Context, token string) ([]domain.Line, error)
	// Discard forgets the session's cart entirely, used on logout.
	Discard(ctx context.Context, token string) error
}
