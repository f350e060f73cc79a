package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	"github.com/Apurer/storefront-admin/internal/domains/clients/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory client persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	clients map[int64]*domain.Client
	byTaxID map[string]int64
	nextID  int64
	// Referenced, when set, blocks deletion like a foreign key would.
	Referenced func(clientID int64) bool
}

func NewRepository() *Repository {
	return &Repository{
		clients: map[int64]*domain.Client{},
		byTaxID: map[string]int64{},
	}
}

func (r *Repository) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	clone := *client
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byTaxID[clone.TaxID]; taken {
		return nil, ports.ErrTaxIDTaken
	}
	r.nextID++
	clone.ID = r.nextID
	r.clients[clone.ID] = &clone
	r.byTaxID[clone.TaxID] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	clone := *client
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.clients[clone.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if owner, taken := r.byTaxID[clone.TaxID]; taken && owner != clone.ID {
		return nil, ports.ErrTaxIDTaken
	}
	delete(r.byTaxID, existing.TaxID)
	r.clients[clone.ID] = &clone
	r.byTaxID[clone.TaxID] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *client
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Client, error) {
	return r.collect(func(*domain.Client) bool { return true }), nil
}

func (r *Repository) Search(_ context.Context, text string) ([]*domain.Client, error) {
	text = strings.TrimSpace(text)
	return r.collect(func(c *domain.Client) bool { return c.Matches(text) }), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok {
		return ports.ErrNotFound
	}
	if r.Referenced != nil && r.Referenced(id) {
		return ports.ErrHasPurchases
	}
	delete(r.byTaxID, client.TaxID)
	delete(r.clients, id)
	return nil
}

func (r *Repository) collect(keep func(*domain.Client) bool) []*domain.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Client, 0, len(r.clients))
	for _, client := range r.clients {
		if !keep(client) {
			continue
		}
		clone := *client
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return list
}
