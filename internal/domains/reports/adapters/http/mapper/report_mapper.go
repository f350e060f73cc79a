package mapper

import reportdomain "github.com/Apurer/storefront-admin/internal/domains/reports/domain"

// Line is one numbered report row.
type Line struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitCost    string `json:"unitCost"`
	LineTotal   string `json:"lineTotal"`
}

// Report is the JSON form of a purchase report. Pages mirror the rendered document.
type Report struct {
	ClientName  string   `json:"clientName"`
	ClientTaxID string   `json:"clientTaxId"`
	Filename    string   `json:"filename"`
	Pages       [][]Line `json:"pages"`
	GrandTotal  string   `json:"grandTotal"`
}

func FromDomainReport(report *reportdomain.Report) Report {
	if report == nil {
		return Report{}
	}
	pages := make([][]Line, 0, len(report.Lines)/reportdomain.RowsPerPage+1)
	for _, page := range report.Pages() {
		lines := make([]Line, 0, len(page))
		for _, line := range page {
			lines = append(lines, Line{
				Index:       line.Index,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitCost:    line.UnitCost.StringFixed(2),
				LineTotal:   line.LineTotal.StringFixed(2),
			})
		}
		pages = append(pages, lines)
	}
	return Report{
		ClientName:  report.ClientName,
		ClientTaxID: report.ClientTaxID,
		Filename:    report.Filename(),
		Pages:       pages,
		GrandTotal:  report.GrandTotal.StringFixed(2),
	}
}
