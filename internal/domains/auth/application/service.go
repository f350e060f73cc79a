package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/storefront-admin/internal/domains/auth/domain"
	"github.com/Apurer/storefront-admin/internal/domains/auth/ports"
)

// DefaultSessionTTL applies when no TTL is configured.
const DefaultSessionTTL = 8 * time.Hour

// Unknown usernames are still run through bcrypt against this hash so a
// failed lookup costs as much as a wrong password.
var (
	dummyHash = sync.OnceValue(func() []byte {
		hash, _ := bcrypt.GenerateFromPassword([]byte("storefront-admin"), bcrypt.DefaultCost)
		return hash
	})
	compareHash = bcrypt.CompareHashAndPassword
)

// SessionEnded is told about tokens whose session is gone, so state keyed by
// the token can be released.
type SessionEnded func(ctx context.Context, token string) error

// Service implements admin login and session checks.
type Service struct {
	admins   ports.AdminRepository
	sessions ports.SessionStore
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
	ended    SessionEnded
	logger   *slog.Logger
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSessionEnded registers fn for sessions that expired or were removed
// behind the service's back.
func WithSessionEnded(fn SessionEnded) Option {
	return func(s *Service) {
		if fn != nil {
			s.ended = fn
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(admins ports.AdminRepository, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{
		admins:   admins,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		newToken: uuid.NewString,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// EnsureAdmin provisions the configured admin. A non-empty hash wins over a
// plaintext password.
func (s *Service) EnsureAdmin(ctx context.Context, username, password, hash string) error {
	var (
		admin *domain.Admin
		err   error
	)
	if strings.TrimSpace(hash) != "" {
		admin, err = domain.NewAdminWithHash(username, hash)
	} else {
		admin, err = domain.NewAdmin(username, password)
	}
	if err != nil {
		return mapError(err)
	}
	return mapError(s.admins.Save(ctx, admin))
}

func (s *Service) Login(ctx context.Context, username, password string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Session{}, ErrAuthentication
	}
	admin, err := s.admins.GetByUsername(ctx, username)
	if errors.Is(err, ports.ErrAdminNotFound) {
		_ = compareHash(dummyHash(), []byte(password))
		return domain.Session{}, ErrAuthentication
	}
	if err != nil {
		return domain.Session{}, mapError(err)
	}
	if !admin.CheckPassword(password) {
		return domain.Session{}, ErrAuthentication
	}
	session := domain.Session{
		Token:     s.newToken(),
		Username:  admin.Username,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.Session{}, mapError(err)
	}
	return session, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Session{}, ErrUnauthenticated
	}
	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, ports.ErrSessionNotFound) {
		s.end(ctx, token)
		return domain.Session{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.Session{}, mapError(err)
	}
	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "expired session could not be deleted",
				slog.String("username", session.Username),
				slog.String("error", err.Error()),
			)
		}
		s.end(ctx, token)
		return domain.Session{}, ErrUnauthenticated
	}
	return session, nil
}

// end releases state held for a dead session. Failures are logged; the caller
// is unauthenticated either way.
func (s *Service) end(ctx context.Context, token string) {
	if s.ended == nil {
		return
	}
	if err := s.ended(ctx, token); err != nil {
		s.logger.WarnContext(ctx, "state of ended session could not be released", slog.String("error", err.Error()))
	}
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return mapError(s.sessions.Delete(ctx, token))
}

var _ ports.Service = (*Service)(nil)
