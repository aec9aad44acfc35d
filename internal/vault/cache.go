package vault

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/casevault/internal/inventory"
	"github.com/osse101/casevault/internal/metrics"
)

// cachedInventory is the last value this process saw stored for an owner
type cachedInventory struct {
	inv     *inventory.Inventory
	version int64
}

// inventoryCache is an expiring LRU of owner inventories. Entries are only
// written while the owner's lock is held.
type inventoryCache struct {
	lru *expirable.LRU[string, cachedInventory]
}

func newInventoryCache(size int, ttl time.Duration) *inventoryCache {
	return &inventoryCache{
		lru: expirable.NewLRU[string, cachedInventory](size, nil, ttl),
	}
}

func (c *inventoryCache) Get(ownerID string) (cachedInventory, bool) {
	entry, ok := c.lru.Get(ownerID)
	metrics.RecordCacheLookup(metrics.InventoryCacheLookups, ok)
	return entry, ok
}

func (c *inventoryCache) Set(ownerID string, inv *inventory.Inventory, version int64) {
	c.lru.Add(ownerID, cachedInventory{inv: inv, version: version})
}

func (c *inventoryCache) Invalidate(ownerID string) {
	c.lru.Remove(ownerID)
}
