package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

var (
	ErrItemNotFound    = fault.New(fault.ErrNotFound, "catalog item not found")
	ErrDuplicateItemID = fault.New(fault.ErrValidation, "catalog item id is duplicated")
	ErrInvalidItem     = fault.New(fault.ErrValidation, "catalog item is invalid")
)

// Item is a purchasable catalog entry. Items never change after the catalog is loaded.
type Item struct {
	ID        int64
	Name      string
	Artist    string
	UnitPrice decimal.Decimal
	Stock     int
}

// Description is the frozen label written to purchase lines.
func (i Item) Description() string {
	return strings.TrimSpace(i.Name) + " - " + strings.TrimSpace(i.Artist)
}

// Validate checks the invariants of a single item.
func (i Item) Validate() error {
	switch {
	case i.ID <= 0:
		return fmt.Errorf("%w: id must be positive", ErrInvalidItem)
	case strings.TrimSpace(i.Name) == "":
		return fmt.Errorf("%w: item %d has no name", ErrInvalidItem, i.ID)
	case i.UnitPrice.IsNegative():
		return fmt.Errorf("%w: item %d has a negative price", ErrInvalidItem, i.ID)
	case !i.UnitPrice.Equal(i.UnitPrice.Round(2)):
		return fmt.Errorf("%w: item %d price %s has more than two decimals", ErrInvalidItem, i.ID, i.UnitPrice)
	case i.Stock < 0:
		return fmt.Errorf("%w: item %d has negative stock", ErrInvalidItem, i.ID)
	}
	return nil
}
