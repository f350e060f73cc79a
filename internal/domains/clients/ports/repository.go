package ports

import (
	"context"

	"github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

var (
	ErrNotFound     = fault.New(fault.ErrNotFound, "client not found")
	ErrTaxIDTaken   = fault.New(fault.ErrConflict, "tax id is already registered to a client")
	ErrHasPurchases = fault.New(fault.ErrConflict, "client has registered purchases and cannot be deleted")
)

// Repository persists clients. Implementations enforce tax id uniqueness
// atomically with the write and report it as ErrTaxIDTaken.
type Repository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	// List returns every client sorted by name.
	List(ctx context.Context) ([]*domain.Client, error)
	// Search matches text against the name (case-insensitive) or the tax id, sorted by name.
	Search(ctx context.Context, text string) ([]*domain.Client, error)
	// Delete removes a client; ErrHasPurchases when purchase lines still reference it.
	Delete(ctx context.Context, id int64) error
}

// PurchaseCounter reports how many purchase lines reference a client.
type PurchaseCounter interface {
	CountForClient(ctx context.Context, clientID int64) (int64, error)
}
