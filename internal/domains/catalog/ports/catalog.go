package ports

import "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"

// Catalog is the read-only lookup consumed by the cart, the ledger and the API.
type Catalog interface {
	List() []domain.Item
	FindByID(id int64) (domain.Item, error)
}

var _ Catalog = (*domain.Catalog)(nil)
