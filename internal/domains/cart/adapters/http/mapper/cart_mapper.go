package mapper

import (
	cartdomain "github.com/Apurer/storefront-admin/internal/domains/cart/domain"
)

// AddItem is the request body for adding an item to the session cart.
type AddItem struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// Line is one priced cart row. Stale lines reference items the catalog no
// longer lists and carry no price.
type Line struct {
	ItemID      int64  `json:"itemId"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice,omitempty"`
	LineTotal   string `json:"lineTotal"`
	Stale       bool   `json:"stale,omitempty"`
}

// Cart is the priced view of the session cart.
type Cart struct {
	Lines        []Line  `json:"lines"`
	Total        string  `json:"total"`
	StaleItemIDs []int64 `json:"staleItemIds,omitempty"`
}

func FromDomainTotals(totals cartdomain.Totals) Cart {
	lines := make([]Line, 0, len(totals.Lines))
	for _, priced := range totals.Lines {
		line := Line{
			ItemID:    priced.ItemID,
			Quantity:  priced.Quantity,
			LineTotal: priced.LineTotal.StringFixed(2),
			Stale:     priced.Stale,
		}
		if !priced.Stale {
			line.Description = priced.Item.Description()
			line.UnitPrice = priced.Item.UnitPrice.StringFixed(2)
		}
		lines = append(lines, line)
	}
	return Cart{
		Lines:        lines,
		Total:        totals.Amount.StringFixed(2),
		StaleItemIDs: totals.StaleItemIDs,
	}
}
