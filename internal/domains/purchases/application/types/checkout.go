package types

import cartdomain "github.com/Apurer/storefront-admin/internal/domains/cart/domain"

// CheckoutInput is the payload handed to the checkout orchestrator. It must
// stay serialisable because the durable orchestrator ships it to a worker.
type CheckoutInput struct {
	ClientID       int64
	Lines          []cartdomain.Line
	IdempotencyKey string
}
