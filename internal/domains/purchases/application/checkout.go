package application

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

// Checkout drains a session cart into the ledger. The cart is cleared only
// after the commit succeeded, so a failed checkout can be retried as is.
type Checkout struct {
	carts        ports.CartSource
	orchestrator ports.WorkflowOrchestrator
	idempotency  ports.IdempotencyStore
	receipts     ports.Service
	logger       *slog.Logger
}

type CheckoutOption func(*Checkout)

func WithCheckoutLogger(logger *slog.Logger) CheckoutOption {
	return func(c *Checkout) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIdempotency remembers checkout keys in store and replays the receipt
// found through receipts when a key comes back.
func WithIdempotency(store ports.IdempotencyStore, receipts ports.Service) CheckoutOption {
	return func(c *Checkout) {
		if store != nil && receipts != nil {
			c.idempotency = store
			c.receipts = receipts
		}
	}
}

func NewCheckout(carts ports.CartSource, orchestrator ports.WorkflowOrchestrator, opts ...CheckoutOption) *Checkout {
	c := &Checkout{
		carts:        carts,
		orchestrator: orchestrator,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Finalize commits the session cart for clientID. A non-empty key that was
// already used for the same client returns the original receipt untouched.
func (c *Checkout) Finalize(ctx context.Context, token string, clientID int64, key string) (*domain.Receipt, error) {
	key = strings.TrimSpace(key)
	if key != "" && c.idempotency != nil {
		receipt, err := c.replay(ctx, key, clientID)
		if err != nil || receipt != nil {
			return receipt, err
		}
	}

	lines, err := c.carts.Lines(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	receipt, err := c.orchestrator.Checkout(ctx, types.CheckoutInput{ClientID: clientID, Lines: lines, IdempotencyKey: key})
	if err != nil {
		return nil, err
	}
	if err := c.carts.Clear(ctx, token); err != nil {
		c.logger.WarnContext(ctx, "checkout committed but cart could not be cleared",
			slog.Int64("client_id", clientID),
			slog.Int64("checkout_id", receipt.CheckoutID),
			slog.String("error", err.Error()),
		)
	}
	if key != "" && c.idempotency != nil {
		record := ports.IdempotencyRecord{Key: key, ClientID: clientID, CheckoutID: receipt.CheckoutID}
		if _, err := c.idempotency.Save(ctx, record); err != nil {
			c.logger.WarnContext(ctx, "checkout committed but idempotency key was not stored",
				slog.Int64("checkout_id", receipt.CheckoutID),
				slog.String("error", err.Error()),
			)
		}
	}
	return receipt, nil
}

func (c *Checkout) replay(ctx context.Context, key string, clientID int64) (*domain.Receipt, error) {
	record, err := c.idempotency.Get(ctx, key)
	if err != nil {
		return nil, fault.Storage("idempotency store", err)
	}
	if record == nil {
		return nil, nil
	}
	if record.ClientID != clientID {
		return nil, ports.ErrIdempotencyConflict
	}
	receipts, err := c.receipts.ReceiptsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].CheckoutID == record.CheckoutID {
			return &receipts[i], nil
		}
	}
	return nil, fault.New(fault.ErrStorage, "receipt for idempotency key is missing")
}
