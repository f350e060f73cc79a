package mapper

import catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"

// Item is the HTTP representation of a catalog entry.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	UnitPrice string `json:"unitPrice"`
	Stock     int    `json:"stock"`
}

func FromDomainItem(item catalogdomain.Item) Item {
	return Item{
		ID:        item.ID,
		Name:      item.Name,
		Artist:    item.Artist,
		UnitPrice: item.UnitPrice.StringFixed(2),
		Stock:     item.Stock,
	}
}

func FromDomainItems(items []catalogdomain.Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, FromDomainItem(item))
	}
	return result
}
