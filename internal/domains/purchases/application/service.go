package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	catalogports "github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
)

// Service implements the purchase ledger on top of a Ledger store.
type Service struct {
	ledger  ports.Ledger
	clients ports.ClientDirectory
	catalog catalogports.Catalog
}

func NewService(ledger ports.Ledger, clients ports.ClientDirectory, catalog catalogports.Catalog) *Service {
	return &Service{ledger: ledger, clients: clients, catalog: catalog}
}

// Commit resolves every cart line against the catalog before anything is
// written, then appends all lines atomically.
func (s *Service) Commit(ctx context.Context, clientID int64, lines []cartdomain.Line) (*domain.Receipt, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	purchase := make([]domain.PurchaseLine, 0, len(lines))
	for _, line := range lines {
		item, err := s.catalog.FindByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		frozen, err := domain.NewPurchaseLine(clientID, item, line.Quantity)
		if err != nil {
			return nil, err
		}
		purchase = append(purchase, frozen)
	}
	receipt, err := s.ledger.Append(ctx, clientID, purchase)
	if err != nil {
		return nil, mapError(err)
	}
	return receipt, nil
}

func (s *Service) ListForClient(ctx context.Context, clientID int64) ([]domain.PurchaseLine, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	lines, err := s.ledger.ListForClient(ctx, clientID)
	if err != nil {
		return nil, mapError(err)
	}
	return lines, nil
}

func (s *Service) TotalForClient(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	lines, err := s.ListForClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.Total(lines), nil
}

func (s *Service) ReceiptsForClient(ctx context.Context, clientID int64) ([]domain.Receipt, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	receipts, err := s.ledger.Receipts(ctx, clientID)
	if err != nil {
		return nil, mapError(err)
	}
	return receipts, nil
}

// CountForClient lets the client registry refuse deletes of referenced clients.
func (s *Service) CountForClient(ctx context.Context, clientID int64) (int64, error) {
	if s == nil || s.ledger == nil {
		return 0, errors.New("purchase ledger not configured")
	}
	count, err := s.ledger.CountForClient(ctx, clientID)
	return count, mapError(err)
}

var _ ports.Service = (*Service)(nil)
