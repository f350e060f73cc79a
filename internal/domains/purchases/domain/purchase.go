package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

var (
	ErrEmptyCart   = fault.New(fault.ErrValidation, "cannot check out an empty cart")
	ErrInvalidLine = fault.New(fault.ErrValidation, "purchase line is invalid")
)

// PurchaseLine records one item bought by a client. Description and UnitCost
// are copied from the catalog at commit time and never follow later changes.
type PurchaseLine struct {
	ID          int64
	ClientID    int64
	Description string
	Quantity    int
	UnitCost    decimal.Decimal
	CreatedAt   time.Time
}

// NewPurchaseLine freezes item into an unsaved line for clientID.
func NewPurchaseLine(clientID int64, item catalogdomain.Item, qty int) (PurchaseLine, error) {
	line := PurchaseLine{
		ClientID:    clientID,
		Description: item.Description(),
		Quantity:    qty,
		UnitCost:    item.UnitPrice,
	}
	return line, line.Validate()
}

func (l PurchaseLine) Validate() error {
	switch {
	case l.ClientID <= 0:
		return fmt.Errorf("%w: client id must be positive", ErrInvalidLine)
	case l.Quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidLine)
	case l.UnitCost.IsNegative():
		return fmt.Errorf("%w: unit cost must not be negative", ErrInvalidLine)
	}
	return nil
}

func (l PurchaseLine) LineTotal() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums quantity times unit cost over lines.
func Total(lines []PurchaseLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Receipt is the outcome of one committed checkout.
type Receipt struct {
	CheckoutID int64
	ClientID   int64
	Lines      []PurchaseLine
	Total      decimal.Decimal
	CreatedAt  time.Time
}
