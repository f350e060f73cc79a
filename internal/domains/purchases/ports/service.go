package ports

import (
	"context"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
)

// Service exposes the purchase ledger use cases.
type Service interface {
	// Commit converts cart lines into purchase lines. It never touches the cart.
	Commit(ctx context.Context, clientID int64, lines []cartdomain.Line) (*domain.Receipt, error)
	ListForClient(ctx context.Context, clientID int64) ([]domain.PurchaseLine, error)
	TotalForClient(ctx context.Context, clientID int64) (decimal.Decimal, error)
	ReceiptsForClient(ctx context.Context, clientID int64) ([]domain.Receipt, error)
}

// CartSource is the slice of the cart context checkout depends on.
type CartSource interface {
	Lines(ctx context.Context, token string) ([]cartdomain.Line, error)
	Clear(ctx context.Context, token string) error
}
