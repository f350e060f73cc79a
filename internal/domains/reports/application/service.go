package application

import (
	"context"

	"github.com/Apurer/storefront-admin/internal/domains/reports/domain"
	"github.com/Apurer/storefront-admin/internal/domains/reports/ports"
)

// Service assembles purchase reports from the client registry and the ledger.
type Service struct {
	clients   ports.ClientDirectory
	purchases ports.PurchaseSource
}

func NewService(clients ports.ClientDirectory, purchases ports.PurchaseSource) *Service {
	return &Service{clients: clients, purchases: purchases}
}

func (s *Service) Build(ctx context.Context, clientID int64) (*domain.Report, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	lines, err := s.purchases.ListForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return domain.Build(client, lines)
}

var _ ports.Service = (*Service)(nil)
