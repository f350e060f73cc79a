package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	purchasedomain "github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
)

// PurchaseLine represents the transport-level purchase line.
type PurchaseLine struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitCost    string    `json:"unitCost"`
	LineTotal   string    `json:"lineTotal"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PurchaseHistory is a client's purchase lines plus their grand total.
type PurchaseHistory struct {
	ClientID int64          `json:"clientId"`
	Lines    []PurchaseLine `json:"lines"`
	Total    string         `json:"total"`
}

// Receipt represents the transport-level checkout receipt.
type Receipt struct {
	CheckoutID int64          `json:"checkoutId"`
	ClientID   int64          `json:"clientId"`
	Lines      []PurchaseLine `json:"lines"`
	Total      string         `json:"total"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func FromDomainLine(line purchasedomain.PurchaseLine) PurchaseLine {
	return PurchaseLine{
		ID:          line.ID,
		Description: line.Description,
		Quantity:    line.Quantity,
		UnitCost:    line.UnitCost.StringFixed(2),
		LineTotal:   line.LineTotal().StringFixed(2),
		CreatedAt:   line.CreatedAt,
	}
}

func FromDomainLines(lines []purchasedomain.PurchaseLine) []PurchaseLine {
	result := make([]PurchaseLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, FromDomainLine(line))
	}
	return result
}

func FromDomainHistory(clientID int64, lines []purchasedomain.PurchaseLine, total decimal.Decimal) PurchaseHistory {
	return PurchaseHistory{
		ClientID: clientID,
		Lines:    FromDomainLines(lines),
		Total:    total.StringFixed(2),
	}
}

func FromDomainReceipt(receipt *purchasedomain.Receipt) Receipt {
	if receipt == nil {
		return Receipt{}
	}
	return Receipt{
		CheckoutID: receipt.CheckoutID,
		ClientID:   receipt.ClientID,
		Lines:      FromDomainLines(receipt.Lines),
		Total:      receipt.Total.StringFixed(2),
		CreatedAt:  receipt.CreatedAt,
	}
}

func FromDomainReceipts(receipts []purchasedomain.Receipt) []Receipt {
	result := make([]Receipt, 0, len(receipts))
	for i := range receipts {
		result = append(result, FromDomainReceipt(&receipts[i]))
	}
	return result
}
