package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/storefront-admin/internal/domains/auth/domain"
	"github.com/Apurer/storefront-admin/internal/domains/auth/ports"
)

var (
	_ ports.AdminRepository = (*AdminRepository)(nil)
	_ ports.SessionStore    = (*SessionStore)(nil)
)

// AdminRepository is an in-memory admin store.
type AdminRepository struct {
	mu     sync.RWMutex
	admins map[string]domain.Admin
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{admins: map[string]domain.Admin{}}
}

func (r *AdminRepository) Save(_ context.Context, admin *domain.Admin) error {
	if admin == nil {
		return errors.New("admin is nil")
	}
	if err := admin.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[admin.Username] = *admin
	return nil
}

func (r *AdminRepository) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[strings.TrimSpace(username)]
	if !ok {
		return nil, ports.ErrAdminNotFound
	}
	return &admin, nil
}

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]domain.Session{}, now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	if strings.TrimSpace(session.Token) == "" || strings.TrimSpace(session.Username) == "" {
		return errors.New("username and token are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, ports.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			purged++
		}
	}
	return purged, nil
}
