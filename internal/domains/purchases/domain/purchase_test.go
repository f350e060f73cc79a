package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

func TestNewPurchaseLine_FreezesCatalogData(t *testing.T) {
	item := catalogdomain.Item{ID: 3, Name: "Thriller", Artist: "Michael Jackson", UnitPrice: decimal.RequireFromString("12.99"), Stock: 4}
	line, err := NewPurchaseLine(7, item, 2)
	require.NoError(t, err)
	require.Equal(t, "Thriller - Michael Jackson", line.Description)

	item.UnitPrice = decimal.RequireFromString("99")
	require.Equal(t, "12.99", line.UnitCost.StringFixed(2))
	require.Equal(t, "25.98", line.LineTotal().StringFixed(2))
}

func TestNewPurchaseLine_Validation(t *testing.T) {
	item := catalogdomain.Item{ID: 3, Name: "X", Artist: "Y", UnitPrice: decimal.NewFromInt(1), Stock: 1}
	_, err := NewPurchaseLine(0, item, 1)
	require.ErrorIs(t, err, fault.ErrValidation)
	_, err = NewPurchaseLine(1, item, 0)
	require.ErrorIs(t, err, ErrInvalidLine)
}

func TestTotal(t *testing.T) {
	lines := []PurchaseLine{
		{Quantity: 2, UnitCost: decimal.RequireFromString("10.00")},
		{Quantity: 1, UnitCost: decimal.RequireFromString("5.00")},
	}
	require.Equal(t, "25.00", Total(lines).StringFixed(2))
	require.True(t, Total(nil).IsZero())
}
