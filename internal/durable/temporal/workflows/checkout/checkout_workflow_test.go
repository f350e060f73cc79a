package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	cartdomain "github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	purchaseactivities "github.com/Apurer/storefront-admin/internal/durable/temporal/activities/purchases"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

type ledgerStub struct {
	calls int
	err   error
}

func (l *ledgerStub) Commit(_ context.Context, clientID int64, lines []cartdomain.Line) (*domain.Receipt, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return &domain.Receipt{CheckoutID: 11, ClientID: clientID, Total: decimal.NewFromInt(int64(len(lines)))}, nil
}

func (l *ledgerStub) ListForClient(context.Context, int64) ([]domain.PurchaseLine, error) {
	return nil, nil
}

func (l *ledgerStub) TotalForClient(context.Context, int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (l *ledgerStub) ReceiptsForClient(context.Context, int64) ([]domain.Receipt, error) {
	return nil, nil
}

func newEnv(t *testing.T, ledger *ledgerStub) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := purchaseactivities.NewActivities(ledger)
	env.RegisterActivityWithOptions(acts.CommitCheckout, activity.RegisterOptions{Name: purchaseactivities.CommitCheckoutActivityName})
	return env
}

func TestCheckoutWorkflow_ReturnsReceipt(t *testing.T) {
	ledger := &ledgerStub{}
	env := newEnv(t, ledger)

	env.ExecuteWorkflow(CheckoutWorkflow, CheckoutWorkflowInput{
		Command: types.CheckoutInput{ClientID: 7, Lines: []cartdomain.Line{{ItemID: 1, Quantity: 2}}},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var receipt domain.Receipt
	require.NoError(t, env.GetWorkflowResult(&receipt))
	require.Equal(t, int64(11), receipt.CheckoutID)
	require.Equal(t, int64(7), receipt.ClientID)
}

func TestCheckoutWorkflow_DoesNotRetryFailedCommit(t *testing.T) {
	ledger := &ledgerStub{err: fault.Wrap(fault.ErrStorage, "purchase ledger", errors.New("connection reset"))}
	env := newEnv(t, ledger)

	env.ExecuteWorkflow(CheckoutWorkflow, CheckoutWorkflowInput{
		Command: types.CheckoutInput{ClientID: 7, Lines: []cartdomain.Line{{ItemID: 1, Quantity: 1}}},
	})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "storage", appErr.Type())
	require.Equal(t, 1, ledger.calls)
}
