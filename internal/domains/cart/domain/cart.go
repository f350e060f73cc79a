package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

var (
	ErrInvalidQuantity   = fault.New(fault.ErrValidation, "quantity must be at least 1")
	ErrInsufficientStock = fault.New(fault.ErrCapacity, "requested quantity exceeds the available stock")
)

// Line is one cart entry. A cart holds at most one line per item.
type Line struct {
	ItemID   int64
	Quantity int
}

// Cart is the per-session selection of catalog items awaiting checkout.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// FromLines rebuilds a cart from stored lines, merging repeated items.
func FromLines(lines []Line) *Cart {
	c := New()
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if pos := c.indexOf(line.ItemID); pos >= 0 {
			c.lines[pos].Quantity += line.Quantity
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// Add puts qty units of item in the cart, merging into an existing line.
// The combined quantity may not exceed the item's stock; on failure the cart
// is left as it was.
func (c *Cart) Add(item catalogdomain.Item, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	pos := c.indexOf(item.ID)
	current := 0
	if pos >= 0 {
		current = c.lines[pos].Quantity
	}
	if current+qty > item.Stock {
		return fmt.Errorf("%w: item %d has %d in stock, cart would hold %d", ErrInsufficientStock, item.ID, item.Stock, current+qty)
	}
	if pos >= 0 {
		c.lines[pos].Quantity += qty
		return nil
	}
	c.lines = append(c.lines, Line{ItemID: item.ID, Quantity: qty})
	return nil
}

// Remove drops the line for itemID. Absent items are ignored.
func (c *Cart) Remove(itemID int64) {
	pos := c.indexOf(itemID)
	if pos < 0 {
		return
	}
	c.lines = append(c.lines[:pos], c.lines[pos+1:]...)
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity reports how many units of itemID the cart holds.
func (c *Cart) Quantity(itemID int64) int {
	if pos := c.indexOf(itemID); pos >= 0 {
		return c.lines[pos].Quantity
	}
	return 0
}

func (c *Cart) indexOf(itemID int64) int {
	for i, line := range c.lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

// ItemLookup resolves catalog items when pricing a cart.
type ItemLookup interface {
	FindByID(id int64) (catalogdomain.Item, error)
}

// PricedLine is a cart line joined with its catalog entry.
type PricedLine struct {
	Line
	Item      catalogdomain.Item
	Stale     bool
	LineTotal decimal.Decimal
}

// Totals is the priced view of a cart.
type Totals struct {
	Lines        []PricedLine
	Amount       decimal.Decimal
	StaleItemIDs []int64
}

// Total prices every line against the catalog. Lines whose item is no longer
// in the catalog contribute zero and are listed in StaleItemIDs.
func (c *Cart) Total(catalog ItemLookup) Totals {
	totals := Totals{
		Lines:  make([]PricedLine, 0, len(c.lines)),
		Amount: decimal.Zero,
	}
	for _, line := range c.lines {
		priced := PricedLine{Line: line, LineTotal: decimal.Zero}
		item, err := catalog.FindByID(line.ItemID)
		if err != nil {
			priced.Stale = true
			totals.StaleItemIDs = append(totals.StaleItemIDs, line.ItemID)
		} else {
			priced.Item = item
			priced.LineTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			totals.Amount = totals.Amount.Add(priced.LineTotal)
		}
		totals.Lines = append(totals.Lines, priced)
	}
	return totals
}
