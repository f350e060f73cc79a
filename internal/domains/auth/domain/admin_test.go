package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewAdmin_HashesPassword(t *testing.T) {
	admin, err := NewAdmin(" admin ", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "admin", admin.Username)
	require.NotEqual(t, "s3cret", admin.PasswordHash)
	require.True(t, admin.CheckPassword("s3cret"))
	require.False(t, admin.CheckPassword("S3cret"))
	require.False(t, admin.CheckPassword(""))
}

func TestNewAdmin_Validation(t *testing.T) {
	_, err := NewAdmin("  ", "pw")
	require.ErrorIs(t, err, ErrEmptyUsername)
	_, err = NewAdmin("admin", "")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewAdminWithHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	admin, err := NewAdminWithHash("admin", string(hash))
	require.NoError(t, err)
	require.True(t, admin.CheckPassword("pw"))

	_, err = NewAdminWithHash("admin", "plaintext")
	require.ErrorIs(t, err, ErrInvalidHash)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.False(t, Session{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	require.True(t, Session{ExpiresAt: now}.Expired(now))
	require.False(t, Session{}.Expired(now))
}
