package ports

import (
	"context"

	clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
)

// Ledger is the append-only store of purchase lines.
type Ledger interface {
	// Append writes every line plus a receipt header in a single transaction.
	// Any failure leaves the ledger without a trace of the checkout.
	Append(ctx context.Context, clientID int64, lines []domain.PurchaseLine) (*domain.Receipt, error)
	// ListForClient returns the client's lines newest first.
	ListForClient(ctx context.Context, clientID int64) ([]domain.PurchaseLine, error)
	CountForClient(ctx context.Context, clientID int64) (int64, error)
	// Receipts returns the client's checkout headers with their lines, newest first.
	Receipts(ctx context.Context, clientID int64) ([]domain.Receipt, error)
}

// ClientDirectory resolves clients for the ledger and the report builder.
type ClientDirectory interface {
	FindByID(ctx context.Context, id int64) (*clientdomain.Client, error)
}
