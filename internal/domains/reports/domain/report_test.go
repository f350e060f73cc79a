package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	purchasedomain "github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

var ana = &clientdomain.Client{ID: 7, Name: "Ana Maria", TaxID: "111"}

func TestBuild_NumbersLinesAndTotals(t *testing.T) {
	report, err := Build(ana, []purchasedomain.PurchaseLine{
		{ID: 2, Description: "Blue - Joni Mitchell", Quantity: 1, UnitCost: decimal.RequireFromString("5.00")},
		{ID: 1, Description: "Abbey Road - The Beatles", Quantity: 2, UnitCost: decimal.RequireFromString("10.00")},
	})
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", report.ClientName)
	require.Equal(t, "111", report.ClientTaxID)
	require.Len(t, report.Lines, 2)
	require.Equal(t, 1, report.Lines[0].Index)
	require.Equal(t, "Blue - Joni Mitchell", report.Lines[0].Description)
	require.Equal(t, "20.00", report.Lines[1].LineTotal.StringFixed(2))
	require.Equal(t, "25.00", report.GrandTotal.StringFixed(2))
	require.Equal(t, "report_Ana_Maria.pdf", report.Filename())
}

func TestBuild_NoPurchases(t *testing.T) {
	_, err := Build(ana, nil)
	require.ErrorIs(t, err, ErrNoPurchases)
	require.ErrorIs(t, err, fault.ErrNotFound)
}

func TestBuild_TruncatesDescriptionsByRune(t *testing.T) {
	long := strings.Repeat("ñ", 45)
	report, err := Build(ana, []purchasedomain.PurchaseLine{{Description: long, Quantity: 1, UnitCost: decimal.NewFromInt(1)}})
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("ñ", DescriptionWidth), report.Lines[0].Description)
}

func TestReport_Pages(t *testing.T) {
	lines := make([]purchasedomain.PurchaseLine, 0, 51)
	for i := 0; i < 51; i++ {
		lines = append(lines, purchasedomain.PurchaseLine{Description: fmt.Sprintf("item %d", i), Quantity: 1, UnitCost: decimal.NewFromInt(1)})
	}
	report, err := Build(ana, lines)
	require.NoError(t, err)

	pages := report.Pages()
	require.Len(t, pages, 3)
	require.Len(t, pages[0], RowsPerPage)
	require.Len(t, pages[2], 1)
	require.Equal(t, 51, pages[2][0].Index)
	require.Equal(t, "51.00", report.GrandTotal.StringFixed(2))
}
