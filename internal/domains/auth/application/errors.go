package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/storefront-admin/internal/domains/auth/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

var (
	// ErrAuthentication is returned for any failed login. It never says which
	// part of the credentials was wrong.
	ErrAuthentication = errors.New("invalid username or password")
	// ErrUnauthenticated is returned for unknown or expired session tokens.
	ErrUnauthenticated = errors.New("session is missing or expired")
	// ErrInvalidInput signals an admin could not be provisioned.
	ErrInvalidInput = fault.New(fault.ErrValidation, "invalid admin input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUsername) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrInvalidHash) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fault.Storage("session store", err)
}
