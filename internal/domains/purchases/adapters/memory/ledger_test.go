package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
)

func line(desc string, qty int, cost string) domain.PurchaseLine {
	return domain.PurchaseLine{Description: desc, Quantity: qty, UnitCost: decimal.RequireFromString(cost)}
}

func TestLedger_AppendAndListNewestFirst(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	receipt, err := ledger.Append(ctx, 7, []domain.PurchaseLine{line("A", 2, "10"), line("B", 1, "5")})
	require.NoError(t, err)
	require.Equal(t, int64(1), receipt.CheckoutID)
	require.Equal(t, "25.00", receipt.Total.StringFixed(2))

	lines, err := ledger.ListForClient(ctx, 7)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "B", lines[0].Description)
	require.Equal(t, "A", lines[1].Description)
	require.Greater(t, lines[0].ID, lines[1].ID)

	other, err := ledger.ListForClient(ctx, 8)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestLedger_FailureRollsBackEveryLine(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()
	ledger.BeforeWrite = func(n int, _ domain.PurchaseLine) error {
		if n == 3 {
			return errors.New("write failed")
		}
		return nil
	}

	_, err := ledger.Append(ctx, 7, []domain.PurchaseLine{line("A", 1, "1"), line("B", 1, "1"), line("C", 1, "1")})
	require.Error(t, err)

	count, err := ledger.CountForClient(ctx, 7)
	require.NoError(t, err)
	require.Zero(t, count)
	require.False(t, ledger.Referenced(7))

	ledger.BeforeWrite = nil
	receipt, err := ledger.Append(ctx, 7, []domain.PurchaseLine{line("A", 1, "1")})
	require.NoError(t, err)
	require.Equal(t, int64(1), receipt.Lines[0].ID)
}

func TestLedger_ReceiptsNewestFirst(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	_, err := ledger.Append(ctx, 7, []domain.PurchaseLine{line("A", 1, "3")})
	require.NoError(t, err)
	_, err = ledger.Append(ctx, 9, []domain.PurchaseLine{line("X", 1, "1")})
	require.NoError(t, err)
	_, err = ledger.Append(ctx, 7, []domain.PurchaseLine{line("B", 2, "4"), line("C", 1, "1")})
	require.NoError(t, err)

	receipts, err := ledger.Receipts(ctx, 7)
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	require.Equal(t, int64(3), receipts[0].CheckoutID)
	require.Equal(t, "9.00", receipts[0].Total.StringFixed(2))
	require.Len(t, receipts[0].Lines, 2)
	require.Equal(t, int64(1), receipts[1].CheckoutID)
}
