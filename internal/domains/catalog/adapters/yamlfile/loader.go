// Package yamlfile loads the storefront catalog from a YAML document.
package yamlfile

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type document struct {
	Items []itemRecord `yaml:"items"`
}

type itemRecord struct {
	ID     int64  `yaml:"id"`
	Name   string `yaml:"name"`
	Artist string `yaml:"artist"`
	Price  string `yaml:"price"`
	Stock  int    `yaml:"stock"`
}

// Default parses the embedded catalog.
func Default() (*domain.Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile parses the catalog at path, or the embedded one when path is blank.
func LoadFile(path string) (*domain.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a catalog document. Unknown fields are rejected.
func Parse(raw []byte) (*domain.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	items := make([]domain.Item, 0, len(doc.Items))
	for _, rec := range doc.Items {
		price, err := decimal.NewFromString(strings.TrimSpace(rec.Price))
		if err != nil {
			return nil, fmt.Errorf("catalog item %d: price %q: %w", rec.ID, rec.Price, err)
		}
		items = append(items, domain.Item{
			ID:        rec.ID,
			Name:      strings.TrimSpace(rec.Name),
			Artist:    strings.TrimSpace(rec.Artist),
			UnitPrice: price,
			Stock:     rec.Stock,
		})
	}
	return domain.NewCatalog(items)
}
