package ports

import (
	"context"
	"time"

	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

// ErrIdempotencyConflict indicates a key was reused for a checkout of another client.
var ErrIdempotencyConflict = fault.New(fault.ErrConflict, "idempotency key was already used for another client")

// IdempotencyRecord ties a caller-supplied key to the checkout it produced.
type IdempotencyRecord struct {
	Key        string
	ClientID   int64
	CheckoutID int64
	CreatedAt  time.Time
}

// IdempotencyStore remembers checkout keys so a retried request replays the
// original receipt instead of committing the cart twice.
type IdempotencyStore interface {
	// Get returns the record for key, or nil when the key is unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores record. When the key exists for the same client and checkout the
	// stored record is returned; any other reuse yields ErrIdempotencyConflict.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
