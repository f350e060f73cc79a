package domain

import "fmt"

// Catalog is the read-only, ordered list of items loaded at startup.
type Catalog struct {
	items []Item
	index map[int64]int
}

// NewCatalog validates items and rejects duplicate ids.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[int64]int, len(items)),
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateItemID, item.ID)
		}
		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// List returns the items in catalog order.
func (c *Catalog) List() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// FindByID resolves a single item.
func (c *Catalog) FindByID(id int64) (Item, error) {
	pos, ok := c.index[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return c.items[pos], nil
}
