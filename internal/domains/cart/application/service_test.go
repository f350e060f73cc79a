package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-admin/internal/domains/cart/adapters/memory"
	"github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

type brokenStore struct{ *memory.Store }

func (brokenStore) Save(context.Context, string, *domain.Cart) error {
	return errors.New("disk full")
}

func newCatalog(t *testing.T) *catalogdomain.Catalog {
	t.Helper()
	catalog, err := catalogdomain.NewCatalog([]catalogdomain.Item{
		{ID: 1, Name: "Thriller", Artist: "Michael Jackson", UnitPrice: decimal.RequireFromString("12.50"), Stock: 3},
	})
	require.NoError(t, err)
	return catalog
}

func TestService_SessionsDoNotShareCarts(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, newCatalog(t))
	ctx := context.Background()

	totals, err := svc.Add(ctx, "a", 1, 2)
	require.NoError(t, err)
	require.Equal(t, "25.00", totals.Amount.StringFixed(2))

	other, err := svc.View(ctx, "b")
	require.NoError(t, err)
	require.Empty(t, other.Lines)

	require.NoError(t, svc.Discard(ctx, "a"))
	lines, err := svc.Lines(ctx, "a")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestService_RejectsMissingSession(t *testing.T) {
	svc := NewService(memory.NewStore(), newCatalog(t))
	_, err := svc.View(context.Background(), "  ")
	require.ErrorIs(t, err, ErrNoSession)
}

func TestService_AddValidatesBeforeLookup(t *testing.T) {
	svc := NewService(memory.NewStore(), newCatalog(t))
	_, err := svc.Add(context.Background(), "a", 77, 0)
	require.ErrorIs(t, err, fault.ErrValidation)

	_, err = svc.Add(context.Background(), "a", 77, 1)
	require.ErrorIs(t, err, fault.ErrNotFound)
}

func TestService_StoreFailureSurfacesAsStorageError(t *testing.T) {
	svc := NewService(brokenStore{memory.NewStore()}, newCatalog(t))
	_, err := svc.Add(context.Background(), "a", 1, 1)
	require.ErrorIs(t, err, fault.ErrStorage)
}
