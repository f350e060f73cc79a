package application

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	"github.com/Apurer/storefront-admin/internal/domains/clients/ports"
)

// Service implements the client registry.
type Service struct {
	repo      ports.Repository
	purchases ports.PurchaseCounter
	logger    *slog.Logger
}

type Option func(*Service)

// WithLogger sets the logger used for the lenient List read path.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, purchases ports.PurchaseCounter, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		purchases: purchases,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) List(ctx context.Context) []*domain.Client {
	clients, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "listing clients failed, returning empty list", slog.String("error", err.Error()))
		return []*domain.Client{}
	}
	return clients
}

func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return client, nil
}

func (s *Service) Search(ctx context.Context, text string) ([]*domain.Client, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptySearch
	}
	clients, err := s.repo.Search(ctx, text)
	if err != nil {
		return nil, mapError(err)
	}
	return clients, nil
}

func (s *Service) Create(ctx context.Context, name, taxID string) (*domain.Client, error) {
	client, err := domain.NewClient(name, taxID)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) Update(ctx context.Context, id int64, name, taxID string) (*domain.Client, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := existing.Rename(name); err != nil {
		return nil, mapError(err)
	}
	if err := existing.ChangeTaxID(taxID); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete refuses to remove a client that purchase lines still reference.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return mapError(err)
	}
	if s.purchases != nil {
		count, err := s.purchases.CountForClient(ctx, id)
		if err != nil {
			return mapError(err)
		}
		if count > 0 {
			return ports.ErrHasPurchases
		}
	}
	return mapError(s.repo.Delete(ctx, id))
}

var _ ports.Service = (*Service)(nil)
