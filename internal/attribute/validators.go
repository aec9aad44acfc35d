// Package attribute checks item instance attributes against the catalog
// metadata of the item they belong to. Every check is pure.
//
// Support is always checked before range or format, so an unsupported
// attribute reports domain.ErrUnsupported whatever its value.
package attribute

import (
	"fmt"
	"math"
	"regexp"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
)

// nametagPattern allows printable ASCII punctuation, CJK scripts and Unicode whitespace, up to 20 runes.
// RE2's \s is ASCII only, so \v and the Unicode space separators are listed explicitly.
// The "*-+" sequence is a character range.
var nametagPattern = regexp.MustCompile("^[A-Za-z0-9`" + `!@#$%^&*-+=(){}\[\]/|\\,.?:;'_\p{Han}\p{Hiragana}\p{Katakana}\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]{0,20}$`)

// ValidateWear checks a wear value against the item's wear bounds
func ValidateWear(wear float64, item *domain.CatalogItem) error {
	if !item.Capabilities().Wear {
		return fmt.Errorf(ErrFmtUnsupported, domain.ErrUnsupported, AttrWear, item.Type)
	}
	lo, hi := item.WearBounds()
	if math.IsNaN(wear) || wear < lo || wear > hi {
		return fmt.Errorf(ErrFmtFloatOutOfRange, domain.ErrOutOfRange, AttrWear, wear, lo, hi)
	}
	return nil
}

// ValidateSeed checks a pattern seed
func ValidateSeed(seed int, item *domain.CatalogItem) error {
	if !item.Capabilities().Seed {
		return fmt.Errorf(ErrFmtUnsupported, domain.ErrUnsupported, AttrSeed, item.Type)
	}
	if seed < domain.MinSeed || seed > domain.MaxSeed {
		return fmt.Errorf(ErrFmtIntOutOfRange, domain.ErrOutOfRange, AttrSeed, seed, domain.MinSeed, domain.MaxSeed)
	}
	return nil
}

// ValidateStatTrak checks a stat-track counter
func ValidateStatTrak(count int, item *domain.CatalogItem) error {
	if !item.Capabilities().StatTrak {
		return fmt.Errorf(ErrFmtUnsupported, domain.ErrUnsupported, AttrStatTrak, item.Type)
	}
	if count < domain.MinStatTrak || count > domain.MaxStatTrak {
		return fmt.Errorf(ErrFmtIntOutOfRange, domain.ErrOutOfRange, AttrStatTrak, count, domain.MinStatTrak, domain.MaxStatTrak)
	}
	return nil
}

// ValidateNametag checks a nametag string
func ValidateNametag(tag string, item *domain.CatalogItem) error {
	if !item.Capabilities().Nametag {
		return fmt.Errorf(ErrFmtUnsupported, domain.ErrUnsupported, AttrNametag, item.Type)
	}
	if !nametagPattern.MatchString(tag) {
		return fmt.Errorf(ErrFmtInvalidNametag, domain.ErrInvalidFormat, tag)
	}
	return nil
}

// ValidateStickers checks applied sticker slots. Nil entries are empty slots.
func ValidateStickers(lookup catalog.Lookup, stickers []*domain.AppliedSticker, item *domain.CatalogItem) error {
	if !item.Capabilities().Stickers {
		return fmt.Errorf(ErrFmtUnsupported, domain.ErrUnsupported, AttrStickers, item.Type)
	}
	if len(stickers) > domain.MaxStickers {
		return fmt.Errorf(ErrFmtTooManyStickers, domain.ErrOutOfRange, len(stickers), domain.MaxStickers)
	}
	for slot, s := range stickers {
		if s == nil {
			continue
		}
		sticker, err := lookup.Get(s.ID)
		if err != nil {
			return fmt.Errorf(ErrFmtStickerSlot, slot, err)
		}
		if sticker.Type != domain.ItemTypeSticker {
			return fmt.Errorf(ErrFmtNotASticker, domain.ErrUnsupported, slot, s.ID, sticker.Type)
		}
		if s.Wear == nil {
			continue
		}
		if w := *s.Wear; math.IsNaN(w) || w < domain.MinStickerWear || w > domain.MaxStickerWear {
			return fmt.Errorf(ErrFmtStickerWear, domain.ErrOutOfRange, slot, w, domain.MinStickerWear, domain.MaxStickerWear)
		}
	}
	return nil
}
