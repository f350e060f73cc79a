// Package domain builds the printable purchase report of a client.
package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	purchasedomain "github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

const (
	// DescriptionWidth bounds the product column, in runes.
	DescriptionWidth = 40
	// RowsPerPage is how many lines a rendered page holds.
	RowsPerPage = 25
)

var ErrNoPurchases = fault.New(fault.ErrNotFound, "client has no registered purchases")

// Line is one numbered row of the report.
type Line struct {
	Index       int
	Description string
	Quantity    int
	UnitCost    decimal.Decimal
	LineTotal   decimal.Decimal
}

// Report is the render-ready purchase summary of one client.
type Report struct {
	ClientName  string
	ClientTaxID string
	Lines       []Line
	GrandTotal  decimal.Decimal
}

// Build numbers lines in the order given, which callers keep newest first.
func Build(client *clientdomain.Client, purchases []purchasedomain.PurchaseLine) (*Report, error) {
	if len(purchases) == 0 {
		return nil, ErrNoPurchases
	}
	report := &Report{
		ClientName:  client.Name,
		ClientTaxID: client.TaxID,
		Lines:       make([]Line, 0, len(purchases)),
		GrandTotal:  decimal.Zero,
	}
	for i, purchase := range purchases {
		total := purchase.LineTotal()
		report.Lines = append(report.Lines, Line{
			Index:       i + 1,
			Description: Truncate(purchase.Description, DescriptionWidth),
			Quantity:    purchase.Quantity,
			UnitCost:    purchase.UnitCost,
			LineTotal:   total,
		})
		report.GrandTotal = report.GrandTotal.Add(total)
	}
	return report, nil
}

// Pages splits the lines into chunks of RowsPerPage.
func (r *Report) Pages() [][]Line {
	pages := make([][]Line, 0, (len(r.Lines)+RowsPerPage-1)/RowsPerPage)
	for start := 0; start < len(r.Lines); start += RowsPerPage {
		end := min(start+RowsPerPage, len(r.Lines))
		pages = append(pages, r.Lines[start:end])
	}
	return pages
}

// Filename is the download name of the rendered report.
func (r *Report) Filename() string {
	return "report_" + strings.ReplaceAll(r.ClientName, " ", "_") + ".pdf"
}

// Truncate cuts s to at most width runes.
func Truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width])
}
