package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	"github.com/Apurer/storefront-admin/internal/domains/cart/ports"
)

var _ ports.Store = (*Store)(nil)

// Store keeps carts in process memory keyed by session token. Concurrent
// writes to the same session resolve as last write wins.
//
// With an idle TTL, a cart untouched for longer than the TTL reads as empty
// and is evicted on a later write, so carts of sessions that end without a
// logout do not accumulate.
type Store struct {
	mu        sync.RWMutex
	carts     map[string]entry
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type entry struct {
	lines   []domain.Line
	touched time.Time
}

type StoreOption func(*Store)

// WithIdleTTL evicts carts that were not written for ttl. Zero keeps carts
// until they are deleted.
func WithIdleTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.idleTTL = ttl
		}
	}
}

func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{carts: map[string]entry{}, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.lastSweep = s.now()
	return s
}

func (s *Store) Load(_ context.Context, token string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.carts[token]
	if !ok || s.stale(e, s.now()) {
		return domain.New(), nil
	}
	return domain.FromLines(e.lines), nil
}

func (s *Store) Save(_ context.Context, token string, cart *domain.Cart) error {
	lines := cart.Lines()
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	s.carts[token] = entry{lines: lines, touched: now}
	return nil
}

func (s *Store) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}

// Sweep evicts every idle cart and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(s.now())
}

// Sessions reports how many sessions currently hold a cart.
func (s *Store) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

func (s *Store) stale(e entry, now time.Time) bool {
	return s.idleTTL > 0 && now.Sub(e.touched) > s.idleTTL
}

// sweepLocked evicts at most once per minute so writes stay cheap.
func (s *Store) sweepLocked(now time.Time) {
	if s.idleTTL <= 0 || now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.evictLocked(now)
}

func (s *Store) evictLocked(now time.Time) int {
	s.lastSweep = now
	if s.idleTTL <= 0 {
		return 0
	}
	removed := 0
	for token, e := range s.carts {
		if s.stale(e, now) {
			delete(s.carts, token)
			removed++
		}
	}
	return removed
}
