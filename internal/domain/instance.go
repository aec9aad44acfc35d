package domain

// AppliedSticker is one occupied sticker slot on an item instance
type AppliedSticker struct {
	ID   int      `json:"id"`
	Wear *float64 `json:"wear,omitempty"`
}

// ItemInstance is a concrete owned unit of a catalog item.
// Optional attributes are nil when absent; a non-nil StatTrak of 0 still marks the item as stat-tracked.
type ItemInstance struct {
	ItemID     int               `json:"id"`
	Wear       *float64          `json:"wear,omitempty"`
	Seed       *int              `json:"seed,omitempty"`
	StatTrak   *int              `json:"stattrak,omitempty"`
	Nametag    *string           `json:"nametag,omitempty"`
	Stickers   []*AppliedSticker `json:"stickers,omitempty"`
	Equipped   bool              `json:"equipped,omitempty"`
	EquippedCT bool              `json:"equippedCT,omitempty"`
	EquippedT  bool              `json:"equippedT,omitempty"`
}

// Clone returns a deep copy so the result shares no pointers with i
func (i ItemInstance) Clone() ItemInstance {
	out := i
	out.Wear = clonePtr(i.Wear)
	out.Seed = clonePtr(i.Seed)
	out.StatTrak = clonePtr(i.StatTrak)
	out.Nametag = clonePtr(i.Nametag)
	if i.Stickers != nil {
		out.Stickers = make([]*AppliedSticker, len(i.Stickers))
		for idx, s := range i.Stickers {
			if s == nil {
				continue
			}
			out.Stickers[idx] = &AppliedSticker{ID: s.ID, Wear: clonePtr(s.Wear)}
		}
	}
	return out
}

// IsEquipped reports the flag for the given slot
func (i *ItemInstance) IsEquipped(slot EquipSlot) bool {
	switch slot {
	case EquipSlotCT:
		return i.EquippedCT
	case EquipSlotT:
		return i.EquippedT
	default:
		return i.Equipped
	}
}

// SetEquipped sets the flag for the given slot
func (i *ItemInstance) SetEquipped(slot EquipSlot, v bool) {
	switch slot {
	case EquipSlotCT:
		i.EquippedCT = v
	case EquipSlotT:
		i.EquippedT = v
	default:
		i.Equipped = v
	}
}

// ClearEquipped resets every equip flag
func (i *ItemInstance) ClearEquipped() {
	i.Equipped = false
	i.EquippedCT = false
	i.EquippedT = false
}

// IsStatTrak reports whether the instance carries a stat-track counter
func (i *ItemInstance) IsStatTrak() bool {
	return i.StatTrak != nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v. Handy for optional attributes.
func Ptr[T any](v T) *T {
	return &v
}
