// Package catalog holds the immutable item registry and the tooling that builds it.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/osse101/casevault/internal/domain"
)

// ErrDuplicateID is returned when two catalog entries share an id
var ErrDuplicateID = errors.New("duplicate item id")

// Lookup resolves catalog ids. Components depend on this rather than *Catalog
// so tests can hand in a small fixture.
type Lookup interface {
	Get(id int) (*domain.CatalogItem, error)
}

// Catalog is a read-only id -> item registry. It is safe for concurrent use.
// Every accessor hands out copies, so callers may modify what they get back.
type Catalog struct {
	items map[int]*domain.CatalogItem
	order []int
}

// New builds a catalog from items. Items are copied; later changes to the
// input slice are not observed.
func New(items []domain.CatalogItem) (*Catalog, error) {
	c := &Catalog{
		items: make(map[int]*domain.CatalogItem, len(items)),
		order: make([]int, 0, len(items)),
	}
	for i := range items {
		item := cloneItem(items[i])
		if _, ok := c.items[item.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, item.ID)
		}
		c.items[item.ID] = &item
		c.order = append(c.order, item.ID)
	}
	return c, nil
}

// Get returns a copy of the item for id or domain.ErrNotFound
func (c *Catalog) Get(id int) (*domain.CatalogItem, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	clone := cloneItem(*item)
	return &clone, nil
}

// Has reports whether id exists
func (c *Catalog) Has(id int) bool {
	_, ok := c.items[id]
	return ok
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of every item in load order
func (c *Catalog) Items() []*domain.CatalogItem {
	return lo.Map(c.order, func(id int, _ int) *domain.CatalogItem {
		clone := cloneItem(*c.items[id])
		return &clone
	})
}

// Containers returns every unlockable container in load order
func (c *Catalog) Containers() []*domain.CatalogItem {
	return lo.Filter(c.Items(), func(item *domain.CatalogItem, _ int) bool {
		return item.IsContainer()
	})
}

// ByType returns every item of the given type in load order
func (c *Catalog) ByType(t domain.ItemType) []*domain.CatalogItem {
	return lo.Filter(c.Items(), func(item *domain.CatalogItem, _ int) bool {
		return item.Type == t
	})
}

func cloneItem(item domain.CatalogItem) domain.CatalogItem {
	item.Teams = slices.Clone(item.Teams)
	item.Contents = slices.Clone(item.Contents)
	item.Specials = slices.Clone(item.Specials)
	if item.WearMin != nil {
		item.WearMin = domain.Ptr(*item.WearMin)
	}
	if item.WearMax != nil {
		item.WearMax = domain.Ptr(*item.WearMax)
	}
	return item
}
