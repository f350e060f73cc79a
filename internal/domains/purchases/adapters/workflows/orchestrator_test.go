package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	cartdomain "github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	checkoutworkflows "github.com/Apurer/storefront-admin/internal/durable/temporal/workflows/checkout"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

func TestFromWorkflowError_RestoresKind(t *testing.T) {
	appErr := temporal.NewNonRetryableApplicationError("client not found", "not_found", nil)
	err := fromWorkflowError(errors.Join(errors.New("workflow execution error"), appErr))
	require.ErrorIs(t, err, fault.ErrNotFound)

	err = fromWorkflowError(errors.New("deadline exceeded"))
	require.ErrorIs(t, err, fault.ErrStorage)
}

func TestCheckoutWorkflowID_PrefersIdempotencyKey(t *testing.T) {
	keyed := types.CheckoutInput{ClientID: 7, IdempotencyKey: " retry-1 "}
	require.Equal(t, "checkout-7-key-retry-1", checkoutWorkflowID(keyed, "trace"))
	require.Equal(t, "checkout-7-trace", checkoutWorkflowID(types.CheckoutInput{ClientID: 7}, "trace"))
}

func completedRun(t *testing.T, receipt domain.Receipt) *mocks.WorkflowRun {
	t.Helper()
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(1).(*domain.Receipt) = receipt
		}).
		Return(nil)
	t.Cleanup(func() { run.AssertExpectations(t) })
	return run
}

func TestTemporalCheckoutWorkflows_StartsRegisteredWorkflowName(t *testing.T) {
	input := types.CheckoutInput{ClientID: 7, Lines: []cartdomain.Line{{ItemID: 1, Quantity: 2}}}
	run := completedRun(t, domain.Receipt{CheckoutID: 11, ClientID: 7, Total: decimal.RequireFromString("20.00")})

	temporalClient := &mocks.Client{}
	temporalClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.MatchedBy(func(options client.StartWorkflowOptions) bool {
			return options.TaskQueue == checkoutworkflows.CheckoutTaskQueue
		}),
		checkoutworkflows.CheckoutWorkflowName,
		mock.MatchedBy(func(in checkoutworkflows.CheckoutWorkflowInput) bool {
			return in.Command.ClientID == 7 && len(in.Command.Lines) == 1
		}),
	).Return(run, nil).Once()
	defer temporalClient.AssertExpectations(t)

	receipt, err := NewTemporalCheckoutWorkflows(temporalClient).Checkout(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, int64(11), receipt.CheckoutID)
	require.Equal(t, "20.00", receipt.Total.StringFixed(2))
}

func TestTemporalCheckoutWorkflows_JoinsRunningKeyedCheckout(t *testing.T) {
	input := types.CheckoutInput{ClientID: 7, Lines: []cartdomain.Line{{ItemID: 1, Quantity: 1}}, IdempotencyKey: "retry-1"}
	run := completedRun(t, domain.Receipt{CheckoutID: 12, ClientID: 7})

	temporalClient := &mocks.Client{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, checkoutworkflows.CheckoutWorkflowName, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "request-1", "run-1")).Once()
	temporalClient.On("GetWorkflow", mock.Anything, "checkout-7-key-retry-1", "run-1").Return(run).Once()
	defer temporalClient.AssertExpectations(t)

	receipt, err := NewTemporalCheckoutWorkflows(temporalClient).Checkout(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, int64(12), receipt.CheckoutID)
}

func TestTemporalCheckoutWorkflows_StartFailureIsStorageKind(t *testing.T) {
	temporalClient := &mocks.Client{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, checkoutworkflows.CheckoutWorkflowName, mock.Anything).
		Return(nil, errors.New("frontend unavailable")).Once()

	_, err := NewTemporalCheckoutWorkflows(temporalClient).Checkout(context.Background(), types.CheckoutInput{ClientID: 7})
	require.ErrorIs(t, err, fault.ErrStorage)
	temporalClient.AssertExpectations(t)
}
