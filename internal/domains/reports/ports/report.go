package ports

import (
	"context"
	"io"

	clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	purchasedomain "github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/domains/reports/domain"
)

// ClientDirectory resolves the client a report is built for.
type ClientDirectory interface {
	FindByID(ctx context.Context, id int64) (*clientdomain.Client, error)
}

// PurchaseSource lists a client's purchases newest first.
type PurchaseSource interface {
	ListForClient(ctx context.Context, clientID int64) ([]purchasedomain.PurchaseLine, error)
}

// Renderer turns a report into a downloadable document.
type Renderer interface {
	ContentType() string
	Render(w io.Writer, report *domain.Report) error
}

// Service exposes report use cases.
type Service interface {
	Build(ctx context.Context, clientID int64) (*domain.Report, error)
}
