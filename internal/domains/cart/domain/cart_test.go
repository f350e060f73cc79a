package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

func testCatalog(t *testing.T, items ...catalogdomain.Item) *catalogdomain.Catalog {
	t.Helper()
	c, err := catalogdomain.NewCatalog(items)
	require.NoError(t, err)
	return c
}

func item(id int64, price string, stock int) catalogdomain.Item {
	return catalogdomain.Item{
		ID:        id,
		Name:      "Album",
		Artist:    "Artist",
		UnitPrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
}

func TestCart_AddMergesWithinStock(t *testing.T) {
	cart := New()
	vinyl := item(1, "10.00", 5)

	require.NoError(t, cart.Add(vinyl, 2))
	require.NoError(t, cart.Add(vinyl, 3))
	require.Equal(t, []Line{{ItemID: 1, Quantity: 5}}, cart.Lines())

	err := cart.Add(vinyl, 1)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.ErrorIs(t, err, fault.ErrCapacity)
	require.Equal(t, 5, cart.Quantity(1))
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	cart := New()
	require.ErrorIs(t, cart.Add(item(1, "1.00", 3), 0), fault.ErrValidation)
	require.ErrorIs(t, cart.Add(item(1, "1.00", 3), -2), ErrInvalidQuantity)
	require.True(t, cart.IsEmpty())
}

func TestCart_StockCeilingScenario(t *testing.T) {
	catalog := testCatalog(t, item(5, "20.00", 2))
	five, err := catalog.FindByID(5)
	require.NoError(t, err)

	cart := New()
	require.NoError(t, cart.Add(five, 1))
	require.True(t, decimal.RequireFromString("20.00").Equal(cart.Total(catalog).Amount))

	require.ErrorIs(t, cart.Add(five, 2), fault.ErrCapacity)
	require.True(t, decimal.RequireFromString("20.00").Equal(cart.Total(catalog).Amount))
	require.Equal(t, 1, cart.Quantity(5))
}

func TestCart_RemoveAndClear(t *testing.T) {
	cart := New()
	require.NoError(t, cart.Add(item(1, "1.00", 9), 1))
	require.NoError(t, cart.Add(item(2, "1.00", 9), 2))
	require.NoError(t, cart.Add(item(3, "1.00", 9), 3))

	cart.Remove(2)
	cart.Remove(42)
	require.Equal(t, []Line{{ItemID: 1, Quantity: 1}, {ItemID: 3, Quantity: 3}}, cart.Lines())

	cart.Clear()
	require.True(t, cart.IsEmpty())
	cart.Clear()
	require.Empty(t, cart.Lines())
}

func TestCart_TotalFlagsStaleLines(t *testing.T) {
	cart := FromLines([]Line{{ItemID: 1, Quantity: 2}, {ItemID: 99, Quantity: 4}, {ItemID: 1, Quantity: 1}})
	totals := cart.Total(testCatalog(t, item(1, "7.50", 10)))

	require.True(t, decimal.RequireFromString("22.50").Equal(totals.Amount))
	require.Equal(t, []int64{99}, totals.StaleItemIDs)
	require.Len(t, totals.Lines, 2)
	require.False(t, totals.Lines[0].Stale)
	require.True(t, totals.Lines[1].Stale)
	require.True(t, totals.Lines[1].LineTotal.IsZero())
}
