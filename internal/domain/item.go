package domain

// ItemType is the closed set of catalog item kinds
type ItemType string

const (
	ItemTypeAgent        ItemType = "agent"
	ItemTypeCollectible  ItemType = "collectible"
	ItemTypeContainer    ItemType = "container"
	ItemTypeContainerKey ItemType = "containerkey"
	ItemTypeGloves       ItemType = "gloves"
	ItemTypeGraffiti     ItemType = "graffiti"
	ItemTypeMelee        ItemType = "melee"
	ItemTypeMusicKit     ItemType = "musickit"
	ItemTypePatch        ItemType = "patch"
	ItemTypeSticker      ItemType = "sticker"
	ItemTypeStub         ItemType = "stub"
	ItemTypeTool         ItemType = "tool"
	ItemTypeWeapon       ItemType = "weapon"
)

// Capabilities lists which instance attributes an item type may carry
type Capabilities struct {
	Seed     bool
	StatTrak bool
	Wear     bool
	Nametag  bool
	Stickers bool
}

// itemCapabilities is the single source of truth for per-type attribute support.
// Every ItemType must have an entry, even when it supports nothing.
var itemCapabilities = map[ItemType]Capabilities{
	ItemTypeAgent:        {},
	ItemTypeCollectible:  {},
	ItemTypeContainer:    {},
	ItemTypeContainerKey: {},
	ItemTypeGloves:       {Seed: true, Wear: true},
	ItemTypeGraffiti:     {},
	ItemTypeMelee:        {Seed: true, StatTrak: true, Wear: true, Nametag: true},
	ItemTypeMusicKit:     {StatTrak: true},
	ItemTypePatch:        {},
	ItemTypeSticker:      {},
	ItemTypeStub:         {},
	ItemTypeTool:         {},
	ItemTypeWeapon:       {Seed: true, StatTrak: true, Wear: true, Nametag: true, Stickers: true},
}

// ItemTypes returns every known item type
func ItemTypes() []ItemType {
	return []ItemType{
		ItemTypeAgent,
		ItemTypeCollectible,
		ItemTypeContainer,
		ItemTypeContainerKey,
		ItemTypeGloves,
		ItemTypeGraffiti,
		ItemTypeMelee,
		ItemTypeMusicKit,
		ItemTypePatch,
		ItemTypeSticker,
		ItemTypeStub,
		ItemTypeTool,
		ItemTypeWeapon,
	}
}

// Valid reports whether t is one of the known item types
func (t ItemType) Valid() bool {
	_, ok := itemCapabilities[t]
	return ok
}

// Capabilities returns the attribute support for t. Unknown types support nothing.
func (t ItemType) Capabilities() Capabilities {
	return itemCapabilities[t]
}

// CatalogItem is the static, read-only metadata of a collectible item.
type CatalogItem struct {
	ID         int      `json:"id" validate:"required,gt=0"`
	Name       string   `json:"name" validate:"required,max=200"`
	Type       ItemType `json:"type" validate:"required,item_type"`
	Rarity     Rarity   `json:"rarity,omitempty" validate:"omitempty,rarity"`
	Model      string   `json:"model,omitempty"`
	Category   string   `json:"category,omitempty"`
	Image      string   `json:"image,omitempty"`
	LocalImage int      `json:"localimage,omitempty" validate:"gte=0,lte=7"`
	Teams      []Team   `json:"teams,omitempty" validate:"omitempty,max=2,dive,gte=0,lte=1"`
	WearMin    *float64 `json:"wearMin,omitempty" validate:"omitempty,gte=0,lte=1"`
	WearMax    *float64 `json:"wearMax,omitempty" validate:"omitempty,gte=0,lte=1"`
	Contents   []int    `json:"contents,omitempty" validate:"omitempty,dive,gt=0"`
	Specials   []int    `json:"specials,omitempty" validate:"omitempty,dive,gt=0"`
	Free       bool     `json:"free,omitempty"`
	Base       bool     `json:"base,omitempty"`
}

// Capabilities is shorthand for c.Type.Capabilities()
func (c *CatalogItem) Capabilities() Capabilities {
	return c.Type.Capabilities()
}

// IsContainer reports whether c can be unlocked
func (c *CatalogItem) IsContainer() bool {
	return c.Type == ItemTypeContainer && c.Contents != nil
}

// WearBounds returns the allowed wear range, falling back to the global [0,1]
func (c *CatalogItem) WearBounds() (float64, float64) {
	lo, hi := MinWear, MaxWear
	if c.WearMin != nil {
		lo = *c.WearMin
	}
	if c.WearMax != nil {
		hi = *c.WearMax
	}
	return lo, hi
}

// HasTeam reports whether the item is usable by the given team
func (c *CatalogItem) HasTeam(team Team) bool {
	for _, t := range c.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// TeamBound reports whether the item is restricted to specific sides
func (c *CatalogItem) TeamBound() bool {
	return c.Teams != nil
}
