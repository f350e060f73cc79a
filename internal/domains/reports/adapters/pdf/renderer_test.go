package pdf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	purchasedomain "github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/domains/reports/domain"
)

func buildReport(t *testing.T, lines int) *domain.Report {
	t.Helper()
	purchases := make([]purchasedomain.PurchaseLine, 0, lines)
	for i := 0; i < lines; i++ {
		purchases = append(purchases, purchasedomain.PurchaseLine{
			Description: fmt.Sprintf("Álbum %d - Intérprete", i),
			Quantity:    1,
			UnitCost:    decimal.RequireFromString("9.99"),
		})
	}
	report, err := domain.Build(&clientdomain.Client{Name: "José Pérez", TaxID: "123-4"}, purchases)
	require.NoError(t, err)
	return report
}

func TestRenderer_WritesPDF(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer()
	require.NoError(t, r.Render(&buf, buildReport(t, 3)))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	require.Equal(t, "application/pdf", r.ContentType())
}

func TestRenderer_OnePDFPagePerReportPage(t *testing.T) {
	r := NewRenderer()
	require.Equal(t, 1, r.build(buildReport(t, domain.RowsPerPage)).PageCount())
	require.Equal(t, 2, r.build(buildReport(t, domain.RowsPerPage+1)).PageCount())
}
