package attribute

import (
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
)

// Validator bundles the per-attribute checks so callers can substitute or instrument them
type Validator interface {
	Wear(wear float64, item *domain.CatalogItem) error
	Seed(seed int, item *domain.CatalogItem) error
	StatTrak(count int, item *domain.CatalogItem) error
	Nametag(tag string, item *domain.CatalogItem) error
	Stickers(stickers []*domain.AppliedSticker, item *domain.CatalogItem) error
}

// Checker is the catalog-backed Validator
type Checker struct {
	lookup catalog.Lookup
}

// NewChecker returns a Validator that resolves sticker ids through lookup
func NewChecker(lookup catalog.Lookup) *Checker {
	return &Checker{lookup: lookup}
}

func (c *Checker) Wear(wear float64, item *domain.CatalogItem) error {
	return ValidateWear(wear, item)
}

func (c *Checker) Seed(seed int, item *domain.CatalogItem) error {
	return ValidateSeed(seed, item)
}

func (c *Checker) StatTrak(count int, item *domain.CatalogItem) error {
	return ValidateStatTrak(count, item)
}

func (c *Checker) Nametag(tag string, item *domain.CatalogItem) error {
	return ValidateNametag(tag, item)
}

func (c *Checker) Stickers(stickers []*domain.AppliedSticker, item *domain.CatalogItem) error {
	return ValidateStickers(c.lookup, stickers, item)
}

// ValidateInstance runs every check that applies to the present attributes of
// inst in the order wear, seed, stickers, nametag, stattrak, returning the first failure
func ValidateInstance(v Validator, inst *domain.ItemInstance, item *domain.CatalogItem) error {
	if inst.Wear != nil {
		if err := v.Wear(*inst.Wear, item); err != nil {
			return err
		}
	}
	if inst.Seed != nil {
		if err := v.Seed(*inst.Seed, item); err != nil {
			return err
		}
	}
	if inst.Stickers != nil {
		if err := v.Stickers(inst.Stickers, item); err != nil {
			return err
		}
	}
	if inst.Nametag != nil {
		if err := v.Nametag(*inst.Nametag, item); err != nil {
			return err
		}
	}
	if inst.StatTrak != nil {
		if err := v.StatTrak(*inst.StatTrak, item); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUnlocked runs the checks that apply to a generated unlock result
func ValidateUnlocked(v Validator, attrs *domain.UnlockAttributes, item *domain.CatalogItem) error {
	inst := domain.ItemInstance{
		ItemID:   item.ID,
		Wear:     attrs.Wear,
		Seed:     attrs.Seed,
		StatTrak: attrs.StatTrak,
	}
	return ValidateInstance(v, &inst, item)
}
