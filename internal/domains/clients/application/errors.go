package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = fault.New(fault.ErrValidation, "invalid client input")
	// ErrEmptySearch is returned when Search is called without text.
	ErrEmptySearch = fault.New(fault.ErrValidation, "search text is required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrShortName) ||
		errors.Is(err, domain.ErrEmptyTaxID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fault.Storage("client store", err)
}
