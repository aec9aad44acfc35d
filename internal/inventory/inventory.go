// Package inventory implements the owned item collection as an immutable value.
//
// Every operation returns a new *Inventory. Operations that change nothing,
// such as adding to a full inventory or touching an index out of range,
// return the receiver itself.
package inventory

import (
	"errors"
	"fmt"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
)

// Entry is one resolved inventory slot
type Entry struct {
	Index    int
	Instance domain.ItemInstance
	Item     *domain.CatalogItem
}

// Inventory is an ordered, capacity-bounded list of item instances.
// Stored instances are never modified after insertion, so unchanged
// slots are shared between an inventory and the ones derived from it.
type Inventory struct {
	catalog   catalog.Lookup
	validator attribute.Validator
	capacity  int
	items     []*domain.ItemInstance
}

// Option configures a new inventory
type Option func(*Inventory)

// WithCapacity overrides the default capacity. Non-positive values are ignored.
func WithCapacity(capacity int) Option {
	return func(inv *Inventory) {
		if capacity > 0 {
			inv.capacity = capacity
		}
	}
}

// New returns an empty inventory
func New(lookup catalog.Lookup, validator attribute.Validator, opts ...Option) *Inventory {
	inv := &Inventory{
		catalog:   lookup,
		validator: validator,
		capacity:  domain.DefaultInventoryCapacity,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Load rebuilds an inventory from its persisted form. Every instance must
// resolve in the catalog and pass the attribute validators. Equip flags are
// kept, so they must already be consistent: a snapshot holding more items than
// its capacity, a flag the item's teams do not permit, or two instances of one
// group equipped in the same slot is rejected with domain.ErrInvalidInput.
func Load(lookup catalog.Lookup, validator attribute.Validator, snap *domain.InventorySnapshot) (*Inventory, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNilSnapshot)
	}
	if snap.Capacity <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgBadCapacity)
	}
	if len(snap.Items) > snap.Capacity {
		return nil, fmt.Errorf(ErrFmtOverCapacity, domain.ErrInvalidInput, len(snap.Items), snap.Capacity)
	}

	inv := New(lookup, validator, WithCapacity(snap.Capacity))
	inv.items = make([]*domain.ItemInstance, 0, len(snap.Items))
	// equipped holds, per slot, the index and item of every instance equipped in it
	var equipped [len(equipSlots)][]Entry
	for i := range snap.Items {
		inst := snap.Items[i].Clone()
		item, err := lookup.Get(inst.ItemID)
		if err != nil {
			return nil, fmt.Errorf(ErrFmtLoadItem, i, err)
		}
		if err := attribute.ValidateInstance(validator, &inst, item); err != nil {
			return nil, fmt.Errorf(ErrFmtLoadItem, i, err)
		}

		for s, slot := range equipSlots {
			if !inst.IsEquipped(slot) {
				continue
			}
			if !permits(item, slot) {
				return nil, fmt.Errorf(ErrFmtSlotNotPermitted, domain.ErrInvalidInput, i, slot)
			}
			for _, other := range equipped[s] {
				if sameGroup(item, other.Item) {
					return nil, fmt.Errorf(ErrFmtEquipConflict, domain.ErrInvalidInput, other.Index, i, slot)
				}
			}
			equipped[s] = append(equipped[s], Entry{Index: i, Item: item})
		}
		inv.items = append(inv.items, &inst)
	}
	return inv, nil
}

// Len returns the number of stored instances
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Capacity returns the soft ceiling on Len
func (inv *Inventory) Capacity() int {
	return inv.capacity
}

// CanAdd reports whether one more instance fits
func (inv *Inventory) CanAdd() bool {
	return len(inv.items) < inv.capacity
}

// Add validates inst against its catalog item and prepends it with every equip
// flag cleared. A full inventory is returned unchanged without validating.
func (inv *Inventory) Add(inst domain.ItemInstance) (*Inventory, error) {
	if !inv.CanAdd() {
		return inv, nil
	}

	item, err := inv.catalog.Get(inst.ItemID)
	if err != nil {
		return inv, err
	}
	added := inst.Clone()
	if err := attribute.ValidateInstance(inv.validator, &added, item); err != nil {
		return inv, err
	}
	added.ClearEquipped()

	items := make([]*domain.ItemInstance, 0, len(inv.items)+1)
	items = append(items, &added)
	items = append(items, inv.items...)
	return inv.with(items), nil
}

// Remove excises the instance at index, keeping the order of the rest
func (inv *Inventory) Remove(index int) *Inventory {
	if !inv.inBounds(index) {
		return inv
	}
	items := make([]*domain.ItemInstance, 0, len(inv.items)-1)
	items = append(items, inv.items[:index]...)
	items = append(items, inv.items[index+1:]...)
	return inv.with(items)
}

// Equip sets the flag for slot on the instance at index and clears the same
// flag on every other instance in its exclusivity group. It is a no-op when
// index is out of range, the instance is already equipped in slot, or the
// item's team binding does not permit slot.
func (inv *Inventory) Equip(index int, slot domain.EquipSlot) (*Inventory, error) {
	if !inv.inBounds(index) {
		return inv, nil
	}
	target := inv.items[index]
	if target.IsEquipped(slot) {
		return inv, nil
	}

	item, err := inv.catalog.Get(target.ItemID)
	if err != nil {
		return inv, err
	}
	if !permits(item, slot) {
		return inv, nil
	}

	items := make([]*domain.ItemInstance, len(inv.items))
	for i, current := range inv.items {
		if i == index {
			items[i] = withFlag(current, slot, true)
			continue
		}
		if !current.IsEquipped(slot) {
			items[i] = current
			continue
		}
		other, err := inv.catalog.Get(current.ItemID)
		if err != nil {
			return inv, err
		}
		if sameGroup(item, other) {
			items[i] = withFlag(current, slot, false)
		} else {
			items[i] = current
		}
	}
	return inv.with(items), nil
}

// Unequip clears the flag for slot on the instance at index only
func (inv *Inventory) Unequip(index int, slot domain.EquipSlot) *Inventory {
	if !inv.inBounds(index) {
		return inv
	}
	items := make([]*domain.ItemInstance, len(inv.items))
	copy(items, inv.items)
	items[index] = withFlag(inv.items[index], slot, false)
	return inv.with(items)
}

// At returns a copy of the instance at index
func (inv *Inventory) At(index int) (domain.ItemInstance, bool) {
	if !inv.inBounds(index) {
		return domain.ItemInstance{}, false
	}
	return inv.items[index].Clone(), true
}

// Items returns copies of every stored instance in order
func (inv *Inventory) Items() []domain.ItemInstance {
	out := make([]domain.ItemInstance, len(inv.items))
	for i, inst := range inv.items {
		out[i] = inst.Clone()
	}
	return out
}

// GetAll resolves every slot against the catalog
func (inv *Inventory) GetAll() ([]Entry, error) {
	entries := make([]Entry, 0, len(inv.items))
	var errs []error
	for i, inst := range inv.items {
		item, err := inv.catalog.Get(inst.ItemID)
		if err != nil {
			errs = append(errs, fmt.Errorf(ErrFmtLoadItem, i, err))
			continue
		}
		entries = append(entries, Entry{Index: i, Instance: inst.Clone(), Item: item})
	}
	return entries, errors.Join(errs...)
}

// Snapshot returns the persisted form. Version is left for the caller to set.
func (inv *Inventory) Snapshot() domain.InventorySnapshot {
	return domain.InventorySnapshot{
		Capacity: inv.capacity,
		Items:    inv.Items(),
	}
}

func (inv *Inventory) inBounds(index int) bool {
	return index >= 0 && index < len(inv.items)
}

func (inv *Inventory) with(items []*domain.ItemInstance) *Inventory {
	return &Inventory{
		catalog:   inv.catalog,
		validator: inv.validator,
		capacity:  inv.capacity,
		items:     items,
	}
}

// withFlag returns a shallow copy of inst with one equip flag changed.
// Attribute pointers stay shared since stored instances are never mutated.
var equipSlots = [...]domain.EquipSlot{domain.EquipSlotShared, domain.EquipSlotCT, domain.EquipSlotT}

func withFlag(inst *domain.ItemInstance, slot domain.EquipSlot, v bool) *domain.ItemInstance {
	out := *inst
	out.SetEquipped(slot, v)
	return &out
}

// permits reports whether item may be equipped in slot. Team-bound items need
// a team slot they list; the shared slot is for items without a team binding.
func permits(item *domain.CatalogItem, slot domain.EquipSlot) bool {
	team, ok := slot.Team()
	if !ok {
		return !item.TeamBound()
	}
	return item.HasTeam(team)
}

// sameGroup reports whether a and b compete for one slot: same type, and for
// weapons also the same model.
func sameGroup(a, b *domain.CatalogItem) bool {
	if a.Type != b.Type {
		return false
	}
	if a.Type == domain.ItemTypeWeapon {
		return a.Model == b.Model
	}
	return true
}
