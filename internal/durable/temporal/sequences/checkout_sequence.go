package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	purchaseactivities "github.com/Apurer/storefront-admin/internal/durable/temporal/activities/purchases"
)

// RunCheckoutSequence commits the checkout exactly once. A failed commit is
// surfaced to the caller, who decides whether to retry.
func RunCheckoutSequence(ctx workflow.Context, input types.CheckoutInput) (*domain.Receipt, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "clientId", input.ClientID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var receipt domain.Receipt
	err := workflow.ExecuteActivity(ctx, purchaseactivities.CommitCheckoutActivityName, input).Get(ctx, &receipt)
	if err != nil {
		logger.Error("checkout sequence failed", "clientId", input.ClientID, "error", err)
		return nil, err
	}
	logger.Info("checkout sequence completed", "clientId", input.ClientID, "checkoutId", receipt.CheckoutID)
	return &receipt, nil
}
