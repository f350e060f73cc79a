package pdf

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-admin/internal/domains/reports/domain"
	"github.com/Apurer/storefront-admin/internal/domains/reports/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

const (
	ContentType = "application/pdf"
	fontFamily  = "Arial"
)

type column struct {
	title string
	width float64
	align string
}

var columns = []column{
	{title: "#", width: 10, align: "C"},
	{title: "Product", width: 80, align: "L"},
	{title: "Qty", width: 25, align: "C"},
	{title: "Unit price", width: 25, align: "R"},
	{title: "Total", width: 25, align: "R"},
}

// Renderer draws reports as A4 PDF documents, one page per report page.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) ContentType() string { return ContentType }

func (r *Renderer) Render(w io.Writer, report *domain.Report) error {
	doc := r.build(report)
	if err := doc.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return doc.Output(w)
}

func (r *Renderer) build(report *domain.Report) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Purchase report", true)
	doc.SetAutoPageBreak(false, 10)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	pages := report.Pages()
	for i, page := range pages {
		doc.AddPage()
		if i == 0 {
			doc.SetFont(fontFamily, "B", 16)
			doc.CellFormat(0, 15, "PURCHASE REPORT", "", 1, "C", false, 0, "")
			doc.Ln(5)
			doc.SetFont(fontFamily, "B", 12)
			doc.CellFormat(0, 10, tr("Client: "+report.ClientName), "", 1, "", false, 0, "")
			doc.CellFormat(0, 10, tr("NIT: "+report.ClientTaxID), "", 1, "", false, 0, "")
			doc.Ln(5)
		}
		doc.SetFont(fontFamily, "B", 10)
		for _, col := range columns {
			doc.CellFormat(col.width, 10, col.title, "1", 0, "C", false, 0, "")
		}
		doc.Ln(-1)

		doc.SetFont(fontFamily, "", 9)
		for _, line := range page {
			cells := []string{
				strconv.Itoa(line.Index),
				tr(line.Description),
				strconv.Itoa(line.Quantity),
				money(line.UnitCost),
				money(line.LineTotal),
			}
			for c, col := range columns {
				doc.CellFormat(col.width, 8, cells[c], "1", 0, col.align, false, 0, "")
			}
			doc.Ln(-1)
		}

		if i == len(pages)-1 {
			doc.Ln(2)
			doc.SetFont(fontFamily, "B", 12)
			doc.CellFormat(140, 10, "GRAND TOTAL:", "", 0, "R", false, 0, "")
			doc.CellFormat(25, 10, money(report.GrandTotal), "1", 0, "R", false, 0, "")
		}
	}
	return doc
}

func money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
