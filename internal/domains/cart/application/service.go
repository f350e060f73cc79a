package application

import (
	"context"
	"strings"

	"github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	"github.com/Apurer/storefront-admin/internal/domains/cart/ports"
	catalogports "github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

// ErrNoSession is returned when a cart operation arrives without a session token.
var ErrNoSession = fault.New(fault.ErrValidation, "a session token is required")

// Service implements the per-session cart.
type Service struct {
	store   ports.Store
	catalog catalogports.Catalog
}

func NewService(store ports.Store, catalog catalogports.Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

func (s *Service) View(ctx context.Context, token string) (domain.Totals, error) {
	cart, err := s.load(ctx, token)
	if err != nil {
		return domain.Totals{}, err
	}
	return cart.Total(s.catalog), nil
}

func (s *Service) Add(ctx context.Context, token string, itemID int64, qty int) (domain.Totals, error) {
	if qty < 1 {
		return domain.Totals{}, domain.ErrInvalidQuantity
	}
	item, err := s.catalog.FindByID(itemID)
	if err != nil {
		return domain.Totals{}, err
	}
	cart, err := s.load(ctx, token)
	if err != nil {
		return domain.Totals{}, err
	}
	if err := cart.Add(item, qty); err != nil {
		return domain.Totals{}, err
	}
	if err := s.save(ctx, token, cart); err != nil {
		return domain.Totals{}, err
	}
	return cart.Total(s.catalog), nil
}

func (s *Service) Remove(ctx context.Context, token string, itemID int64) (domain.Totals, error) {
	cart, err := s.load(ctx, token)
	if err != nil {
		return domain.Totals{}, err
	}
	cart.Remove(itemID)
	if err := s.save(ctx, token, cart); err != nil {
		return domain.Totals{}, err
	}
	return cart.Total(s.catalog), nil
}

func (s *Service) Clear(ctx context.Context, token string) error {
	cart, err := s.load(ctx, token)
	if err != nil {
		return err
	}
	cart.Clear()
	return s.save(ctx, token, cart)
}

func (s *Service) Lines(ctx context.Context, token string) ([]domain.Line, error) {
	cart, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return cart.Lines(), nil
}

func (s *Service) Discard(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return fault.Storage("cart store", s.store.Delete(ctx, token))
}

func (s *Service) load(ctx context.Context, token string) (*domain.Cart, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoSession
	}
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, fault.Storage("cart store", err)
	}
	return cart, nil
}

func (s *Service) save(ctx context.Context, token string, cart *domain.Cart) error {
	return fault.Storage("cart store", s.store.Save(ctx, strings.TrimSpace(token), cart))
}

var _ ports.Service = (*Service)(nil)
