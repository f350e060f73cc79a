package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/storefront-admin/internal/domains/auth/adapters/memory"
	"github.com/Apurer/storefront-admin/internal/domains/auth/domain"
	"github.com/Apurer/storefront-admin/internal/domains/auth/ports"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newService(t *testing.T) (*Service, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewService(memory.NewAdminRepository(), memory.NewSessionStore(), WithSessionTTL(time.Hour), WithClock(c.Now))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "admin123", ""))
	return svc, c
}

func TestService_LoginIssuesSession(t *testing.T) {
	svc, c := newService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, " admin ", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "admin", session.Username)
	require.Equal(t, c.now.Add(time.Hour), session.ExpiresAt)

	again, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotEqual(t, session.Token, again.Token)

	authed, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, "admin", authed.Username)
}

func TestService_LoginFailuresLookAlike(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, creds := range [][2]string{{"admin", "wrong"}, {"ghost", "admin123"}, {"", ""}} {
		_, err := svc.Login(ctx, creds[0], creds[1])
		require.ErrorIs(t, err, ErrAuthentication)
		require.Equal(t, ErrAuthentication.Error(), err.Error())
	}
}

func TestService_SessionsExpireAndLogout(t *testing.T) {
	svc, c := newService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	c.now = c.now.Add(2 * time.Hour)
	_, err = svc.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)

	c.now = c.now.Add(-2 * time.Hour)
	session, err = svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, session.Token))
	_, err = svc.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestService_EnsureAdminWithHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("from-env"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewService(memory.NewAdminRepository(), memory.NewSessionStore())
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "ops", "ignored", string(hash)))

	_, err = svc.Login(ctx, "ops", "from-env")
	require.NoError(t, err)

	err = svc.EnsureAdmin(ctx, "ops", "", "not-a-hash")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, fault.ErrValidation)
}

func TestService_UnknownUsernameStillComparesHash(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	compared := 0
	original := compareHash
	compareHash = func(hash, password []byte) error {
		compared++
		return original(hash, password)
	}
	t.Cleanup(func() { compareHash = original })

	_, err := svc.Login(ctx, "ghost", "admin123")
	require.ErrorIs(t, err, ErrAuthentication)
	require.Equal(t, 1, compared)
}

type failingDeletes struct {
	ports.SessionStore
}

func (failingDeletes) Delete(context.Context, string) error {
	return errors.New("session table locked")
}

func TestService_EndedSessionsReleaseState(t *testing.T) {
	c := &clock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	sessions := memory.NewSessionStore()
	var ended []string
	svc := NewService(memory.NewAdminRepository(), failingDeletes{sessions},
		WithSessionTTL(time.Hour),
		WithClock(c.Now),
		WithSessionEnded(func(_ context.Context, token string) error {
			ended = append(ended, token)
			return nil
		}),
	)
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin123", ""))

	session, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	c.now = c.now.Add(2 * time.Hour)
	_, err = svc.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.Equal(t, []string{session.Token}, ended)

	_, err = svc.Authenticate(ctx, "purged-elsewhere")
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.Equal(t, []string{session.Token, "purged-elsewhere"}, ended)

	require.NoError(t, sessions.Save(ctx, domain.Session{Token: "live", Username: "admin", ExpiresAt: c.now.Add(time.Hour)}))
	_, err = svc.Authenticate(ctx, "live")
	require.NoError(t, err)
	require.Len(t, ended, 2)
}
