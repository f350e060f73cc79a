package ports

import (
	"context"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
)

// WorkflowOrchestrator runs the commit step of a checkout, either inline or durably.
type WorkflowOrchestrator interface {
	Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Receipt, error)
}
