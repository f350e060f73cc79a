package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MinNameLength is the shortest accepted client name, in runes.
const MinNameLength = 2

var (
	ErrEmptyName  = errors.New("client name is required")
	ErrShortName  = errors.New("client name must be at least 2 characters")
	ErrEmptyTaxID = errors.New("client tax id (NIT) is required")
)

// Client is a registered customer identified by its tax id (NIT).
type Client struct {
	ID    int64
	Name  string
	TaxID string
}

// NewClient builds an unsaved client ensuring required invariants.
func NewClient(name, taxID string) (*Client, error) {
	client := &Client{}
	if err := client.Rename(name); err != nil {
		return nil, err
	}
	if err := client.ChangeTaxID(taxID); err != nil {
		return nil, err
	}
	return client, nil
}

// Rename trims and validates the display name.
func (c *Client) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) < MinNameLength {
		return ErrShortName
	}
	c.Name = name
	return nil
}

// ChangeTaxID trims and validates the NIT.
func (c *Client) ChangeTaxID(taxID string) error {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return ErrEmptyTaxID
	}
	c.TaxID = taxID
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Client) Validate() error {
	if err := c.Rename(c.Name); err != nil {
		return err
	}
	return c.ChangeTaxID(c.TaxID)
}

// Matches reports whether text occurs in the name (case-insensitive) or in the tax id.
func (c *Client) Matches(text string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(text)) ||
		strings.Contains(c.TaxID, text)
}
