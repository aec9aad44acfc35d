package attribute_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/testing/fixtures"
)

func mustGet(t *testing.T, cat *catalog.Catalog, id int) *domain.CatalogItem {
	t.Helper()
	item, err := cat.Get(id)
	require.NoError(t, err)
	return item
}

// Every wear-capable item accepts its whole closed range and rejects values
// one ULP outside either bound.
func TestValidateWear_Bounds(t *testing.T) {
	cat := fixtures.Catalog(t)

	for _, item := range cat.Items() {
		if !item.Capabilities().Wear {
			continue
		}
		t.Run(item.Name, func(t *testing.T) {
			lo, hi := item.WearBounds()
			for i := 0; i <= 100; i++ {
				v := lo + (hi-lo)*float64(i)/100
				if v > hi {
					v = hi
				}
				assert.NoError(t, attribute.ValidateWear(v, item), "wear %v", v)
			}
			assert.NoError(t, attribute.ValidateWear(lo, item))
			assert.NoError(t, attribute.ValidateWear(hi, item))

			below := math.Nextafter(lo, math.Inf(-1))
			above := math.Nextafter(hi, math.Inf(1))
			assert.ErrorIs(t, attribute.ValidateWear(below, item), domain.ErrOutOfRange)
			assert.ErrorIs(t, attribute.ValidateWear(above, item), domain.ErrOutOfRange)
			assert.ErrorIs(t, attribute.ValidateWear(math.NaN(), item), domain.ErrOutOfRange)
		})
	}
}

func TestValidateWear_Unsupported(t *testing.T) {
	cat := fixtures.Catalog(t)
	sticker := mustGet(t, cat, fixtures.StickerCrown)

	err := attribute.ValidateWear(0.5, sticker)
	assert.ErrorIs(t, err, domain.ErrUnsupported)

	// support is checked before range
	err = attribute.ValidateWear(7, sticker)
	assert.ErrorIs(t, err, domain.ErrUnsupported)
}

func TestValidateSeed(t *testing.T) {
	cat := fixtures.Catalog(t)
	weapon := mustGet(t, cat, fixtures.RedlineAK)

	tests := []struct {
		name    string
		seed    int
		wantErr error
	}{
		{"lower bound", 1, nil},
		{"upper bound", 1000, nil},
		{"zero", 0, domain.ErrOutOfRange},
		{"above", 1001, domain.ErrOutOfRange},
		{"negative", -3, domain.ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := attribute.ValidateSeed(tt.seed, weapon)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Items without seed support reject every value
func TestValidateSeed_UnsupportedForAllValues(t *testing.T) {
	cat := fixtures.Catalog(t)
	for _, item := range cat.Items() {
		if item.Capabilities().Seed {
			continue
		}
		for _, seed := range []int{math.MinInt, -1, 0, 1, 500, 1000, 1001, math.MaxInt} {
			assert.ErrorIs(t, attribute.ValidateSeed(seed, item), domain.ErrUnsupported, "item %d seed %d", item.ID, seed)
		}
	}
}

func TestValidateStatTrak(t *testing.T) {
	cat := fixtures.Catalog(t)
	kit := mustGet(t, cat, fixtures.MusicKitDaniel)
	gloves := mustGet(t, cat, fixtures.SportGlovesVice)

	assert.NoError(t, attribute.ValidateStatTrak(0, kit))
	assert.NoError(t, attribute.ValidateStatTrak(999999, kit))
	assert.ErrorIs(t, attribute.ValidateStatTrak(-1, kit), domain.ErrOutOfRange)
	assert.ErrorIs(t, attribute.ValidateStatTrak(1000000, kit), domain.ErrOutOfRange)
	assert.ErrorIs(t, attribute.ValidateStatTrak(0, gloves), domain.ErrUnsupported)
}

func TestValidateNametag(t *testing.T) {
	cat := fixtures.Catalog(t)
	weapon := mustGet(t, cat, fixtures.RedlineAK)
	melee := mustGet(t, cat, fixtures.KarambitDoppler)
	gloves := mustGet(t, cat, fixtures.SportGlovesVice)

	tests := []struct {
		name    string
		tag     string
		wantErr error
	}{
		{"plain ascii", "My Rifle", nil},
		{"punctuation", "!(wp)[x]{y}#$%^&*+=", nil},
		{"quotes and slashes", "'/\\|,.?:;_`@", nil},
		{"han", "龙王", nil},
		{"hiragana and katakana", "ひらがなカタカナ", nil},
		{"empty", "", nil},
		{"ideographic space", "龙\u3000王", nil},
		{"no-break space", "a\u00a0b", nil},
		{"vertical tab", "a\vb", nil},
		{"line separator", "a\u2028b", nil},
		{"zero width no-break space", "\ufeffab", nil},
		{"twenty runes", strings.Repeat("a", 20), nil},
		{"twenty cjk runes", strings.Repeat("龙", 20), nil},
		{"too long", strings.Repeat("a", 21), domain.ErrInvalidFormat},
		{"emoji", "🔥", domain.ErrInvalidFormat},
		{"angle brackets", "<script>", domain.ErrInvalidFormat},
		{"cyrillic", "привет", domain.ErrInvalidFormat},
		{"hyphen outside range", "a-b", domain.ErrInvalidFormat},
		{"zero width space", "a\u200bb", domain.ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := attribute.ValidateNametag(tt.tag, weapon)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.NoError(t, attribute.ValidateNametag("Stabby", melee))
	assert.ErrorIs(t, attribute.ValidateNametag("Warm", gloves), domain.ErrUnsupported)
}

func TestValidateStickers(t *testing.T) {
	cat := fixtures.Catalog(t)
	weapon := mustGet(t, cat, fixtures.RedlineAK)
	melee := mustGet(t, cat, fixtures.KarambitDoppler)

	crown := func(wear *float64) *domain.AppliedSticker {
		return &domain.AppliedSticker{ID: fixtures.StickerCrown, Wear: wear}
	}

	tests := []struct {
		name     string
		item     *domain.CatalogItem
		stickers []*domain.AppliedSticker
		wantErr  error
	}{
		{"empty slots", weapon, []*domain.AppliedSticker{nil, nil, nil, nil, nil}, nil},
		{"full set", weapon, []*domain.AppliedSticker{crown(nil), crown(domain.Ptr(0.0)), crown(domain.Ptr(0.9)), nil, {ID: fixtures.StickerHowl}}, nil},
		{"too many slots", weapon, []*domain.AppliedSticker{nil, nil, nil, nil, nil, nil}, domain.ErrOutOfRange},
		{"unknown sticker", weapon, []*domain.AppliedSticker{{ID: 123456}}, domain.ErrNotFound},
		{"not a sticker", weapon, []*domain.AppliedSticker{{ID: fixtures.GraffitiSmile}}, domain.ErrUnsupported},
		{"wear above", weapon, []*domain.AppliedSticker{crown(domain.Ptr(0.900001))}, domain.ErrOutOfRange},
		{"wear below", weapon, []*domain.AppliedSticker{crown(domain.Ptr(-0.1))}, domain.ErrOutOfRange},
		{"melee cannot hold stickers", melee, []*domain.AppliedSticker{crown(nil)}, domain.ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := attribute.ValidateStickers(cat, tt.stickers, tt.item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
