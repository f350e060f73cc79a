package checkout

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/durable/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "purchases.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "CHECKOUT"
)

// CheckoutWorkflowInput carries the cart snapshot being committed.
type CheckoutWorkflowInput struct {
	Command types.CheckoutInput
	TraceID string
}

// CheckoutWorkflow commits a cart snapshot to the purchase ledger.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*domain.Receipt, error) {
	logger := workflow.GetLogger(ctx)
	clientID := input.Command.ClientID
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "clientId", clientID)...)
	receipt, err := sequences.RunCheckoutSequence(ctx, input.Command)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "clientId", clientID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "clientId", clientID, "checkoutId", receipt.CheckoutID)...)
	return receipt, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
