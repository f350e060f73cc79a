package ports

import (
	"context"

	"github.com/Apurer/storefront-admin/internal/domains/clients/domain"
)

// Service exposes the client registry use cases to adapters.
type Service interface {
	// List never fails: storage errors are logged and yield an empty result.
	List(ctx context.Context) []*domain.Client
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	Search(ctx context.Context, text string) ([]*domain.Client, error)
	Create(ctx context.Context, name, taxID string) (*domain.Client, error)
	Update(ctx context.Context, id int64, name, taxID string) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}
