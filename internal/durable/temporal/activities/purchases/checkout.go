package purchases

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	purchasesports "github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

// CommitCheckoutActivityName commits cart lines to the purchase ledger.
const CommitCheckoutActivityName = "purchases.activities.CommitCheckout"

// Activities groups activities that operate on the purchases bounded context.
type Activities struct {
	ledger purchasesports.Service
}

func NewActivities(ledger purchasesports.Service) *Activities {
	return &Activities{ledger: ledger}
}

// CommitCheckout runs the atomic commit. Failures are returned as
// non-retryable application errors typed with their fault kind so the caller
// can map them back.
func (a *Activities) CommitCheckout(ctx context.Context, input types.CheckoutInput) (*domain.Receipt, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.ledger == nil {
		logger.Error("checkout activity not initialized", "clientId", input.ClientID)
		return nil, errors.New("checkout activity not initialized")
	}
	logger.Info("CommitCheckout activity started", "clientId", input.ClientID, "lines", len(input.Lines))
	receipt, err := a.ledger.Commit(ctx, input.ClientID, input.Lines)
	if err != nil {
		logger.Error("CommitCheckout activity failed", "clientId", input.ClientID, "error", err)
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), fault.Name(err), err)
	}
	logger.Info("CommitCheckout activity completed", "clientId", input.ClientID, "checkoutId", receipt.CheckoutID)
	return receipt, nil
}
