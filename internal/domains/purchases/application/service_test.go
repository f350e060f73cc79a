package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	clientmemory "github.com/Apurer/storefront-admin/internal/domains/clients/adapters/memory"
	clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	clientports "github.com/Apurer/storefront-admin/internal/domains/clients/ports"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/adapters/memory"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

type directory struct{ repo *clientmemory.Repository }

func (d directory) FindByID(ctx context.Context, id int64) (*clientdomain.Client, error) {
	return d.repo.GetByID(ctx, id)
}

type fixture struct {
	ledger  *memory.Ledger
	clients *clientmemory.Repository
	service *Service
	client  *clientdomain.Client
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	catalog, err := catalogdomain.NewCatalog([]catalogdomain.Item{
		{ID: 1, Name: "Abbey Road", Artist: "The Beatles", UnitPrice: decimal.RequireFromString("10.00"), Stock: 5},
		{ID: 2, Name: "Blue", Artist: "Joni Mitchell", UnitPrice: decimal.RequireFromString("5.00"), Stock: 5},
		{ID: 3, Name: "Kind of Blue", Artist: "Miles Davis", UnitPrice: decimal.RequireFromString("8.00"), Stock: 5},
	})
	require.NoError(t, err)

	clients := clientmemory.NewRepository()
	client, err := clientdomain.NewClient("Ana", "111")
	require.NoError(t, err)
	client, err = clients.Create(context.Background(), client)
	require.NoError(t, err)

	ledger := memory.NewLedger()
	return fixture{
		ledger:  ledger,
		clients: clients,
		service: NewService(ledger, directory{clients}, catalog),
		client:  client,
	}
}

func TestService_CommitScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.service.Commit(ctx, f.client.ID, []cartdomain.Line{{ItemID: 1, Quantity: 2}, {ItemID: 2, Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, receipt.Lines, 2)

	total, err := f.service.TotalForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("25.00").Equal(total))

	lines, err := f.service.ListForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "Blue - Joni Mitchell", lines[0].Description)
	require.Equal(t, "Abbey Road - The Beatles", lines[1].Description)

	receipts, err := f.service.ReceiptsForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
}

func TestService_CommitEmptyCartWritesNothing(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Commit(context.Background(), f.client.ID, nil)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	require.ErrorIs(t, err, fault.ErrValidation)

	count, err := f.service.CountForClient(context.Background(), f.client.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestService_CommitUnknownClientOrItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Commit(ctx, 404, []cartdomain.Line{{ItemID: 1, Quantity: 1}})
	require.ErrorIs(t, err, clientports.ErrNotFound)

	_, err = f.service.Commit(ctx, f.client.ID, []cartdomain.Line{{ItemID: 1, Quantity: 1}, {ItemID: 99, Quantity: 1}})
	require.ErrorIs(t, err, fault.ErrNotFound)

	lines, err := f.service.ListForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Empty(t, lines)

	_, err = f.service.ListForClient(ctx, 404)
	require.ErrorIs(t, err, fault.ErrNotFound)
}

func TestService_CommitRollsBackOnStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ledger.BeforeWrite = func(n int, _ domain.PurchaseLine) error {
		if n == 2 {
			return errors.New("connection reset")
		}
		return nil
	}

	_, err := f.service.Commit(ctx, f.client.ID, []cartdomain.Line{{ItemID: 1, Quantity: 1}, {ItemID: 2, Quantity: 1}, {ItemID: 3, Quantity: 1}})
	require.ErrorIs(t, err, fault.ErrStorage)

	count, err := f.service.CountForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

type cartStub struct {
	lines    []cartdomain.Line
	clearErr error
	cleared  bool
}

func (c *cartStub) Lines(context.Context, string) ([]cartdomain.Line, error) {
	return append([]cartdomain.Line(nil), c.lines...), nil
}

func (c *cartStub) Clear(context.Context, string) error {
	if c.clearErr != nil {
		return c.clearErr
	}
	c.cleared = true
	c.lines = nil
	return nil
}

type inlineOrchestrator struct{ service *Service }

func (o inlineOrchestrator) Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Receipt, error) {
	return o.service.Commit(ctx, input.ClientID, input.Lines)
}

func TestCheckout_ClearsCartOnlyAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart := &cartStub{lines: []cartdomain.Line{{ItemID: 1, Quantity: 1}, {ItemID: 2, Quantity: 2}}}
	checkout := NewCheckout(cart, inlineOrchestrator{f.service})

	f.ledger.BeforeWrite = func(n int, _ domain.PurchaseLine) error {
		if n == 2 {
			return errors.New("disk full")
		}
		return nil
	}
	_, err := checkout.Finalize(ctx, "token", f.client.ID, "")
	require.ErrorIs(t, err, fault.ErrStorage)
	require.False(t, cart.cleared)
	require.Len(t, cart.lines, 2)

	f.ledger.BeforeWrite = nil
	receipt, err := checkout.Finalize(ctx, "token", f.client.ID, "")
	require.NoError(t, err)
	require.Equal(t, "20.00", receipt.Total.StringFixed(2))
	require.True(t, cart.cleared)

	_, err = checkout.Finalize(ctx, "token", f.client.ID, "")
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckout_KeepsReceiptWhenCartClearFails(t *testing.T) {
	f := newFixture(t)
	cart := &cartStub{lines: []cartdomain.Line{{ItemID: 3, Quantity: 1}}, clearErr: errors.New("cart store down")}
	checkout := NewCheckout(cart, inlineOrchestrator{f.service})

	receipt, err := checkout.Finalize(context.Background(), "token", f.client.ID, "")
	require.NoError(t, err)
	require.Len(t, receipt.Lines, 1)
}

func TestCheckout_ReplaysIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart := &cartStub{lines: []cartdomain.Line{{ItemID: 1, Quantity: 2}}}
	checkout := NewCheckout(cart, inlineOrchestrator{f.service}, WithIdempotency(memory.NewIdempotencyStore(), f.service))

	first, err := checkout.Finalize(ctx, "token", f.client.ID, "key-1")
	require.NoError(t, err)

	cart.lines = []cartdomain.Line{{ItemID: 2, Quantity: 1}}
	again, err := checkout.Finalize(ctx, "token", f.client.ID, " key-1 ")
	require.NoError(t, err)
	require.Equal(t, first.CheckoutID, again.CheckoutID)
	require.Equal(t, "20.00", again.Total.StringFixed(2))
	require.Len(t, cart.lines, 1, "replay must not touch the cart")

	count, err := f.service.CountForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	other, err := clientdomain.NewClient("Bruno", "222")
	require.NoError(t, err)
	other, err = f.clients.Create(ctx, other)
	require.NoError(t, err)
	_, err = checkout.Finalize(ctx, "token", other.ID, "key-1")
	require.ErrorIs(t, err, fault.ErrConflict)
}
