package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/testing/fixtures"
)

func newLocalizer(t *testing.T) *catalog.Localizer {
	t.Helper()
	loc, err := catalog.NewLocalizer(fixtures.Catalog(t), map[string]map[string]catalog.Localization{
		"en": {
			"100": {Name: "AK-47 | Safari Mesh", Desc: "Desert camo"},
		},
		"de": {
			"100": {Name: "AK-47 | Safarinetz"},
			"102": {Name: "AK-47 | Rotlinie"},
		},
		"sv": {
			"110": {Name: "Ögon"},
			"111": {Name: "Zebra"},
			"112": {Name: "Äpple"},
		},
	})
	require.NoError(t, err)
	return loc
}

func TestLocalizer_Name(t *testing.T) {
	loc := newLocalizer(t)

	tests := []struct {
		name   string
		id     int
		accept string
		want   string
	}{
		{"exact language", fixtures.SafariMeshAK, "de", "AK-47 | Safarinetz"},
		{"regional variant matches base", fixtures.RedlineAK, "de-CH,de;q=0.9", "AK-47 | Rotlinie"},
		{"weighted preference", fixtures.SafariMeshAK, "fr;q=0.9,de;q=0.8", "AK-47 | Safarinetz"},
		{"unsupported language falls back", fixtures.SafariMeshAK, "ja", "AK-47 | Safari Mesh"},
		{"empty header falls back", fixtures.SafariMeshAK, "", "AK-47 | Safari Mesh"},
		{"garbage header falls back", fixtures.SafariMeshAK, "!!!", "AK-47 | Safari Mesh"},
		{"missing entry uses catalog name", fixtures.DragonLoreAWP, "de", "AWP | Dragon Lore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loc.Name(tt.id, tt.accept))
		})
	}
}

func TestLocalizer_LookupFallsBackToDefaultLanguage(t *testing.T) {
	loc := newLocalizer(t)

	entry := loc.Lookup(fixtures.SafariMeshAK, "sv")
	assert.Equal(t, "AK-47 | Safari Mesh", entry.Name)
	assert.Equal(t, "Desert camo", entry.Desc)
}

func TestLocalizer_Languages(t *testing.T) {
	loc := newLocalizer(t)
	assert.Equal(t, []string{"en", "de", "sv"}, loc.Languages())

	empty, err := catalog.NewLocalizer(fixtures.Catalog(t), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, empty.Languages())
	assert.Equal(t, "Arms Deal Case", empty.Name(fixtures.WeaponCase, "de"))
}

func TestLocalizer_SortByName(t *testing.T) {
	loc := newLocalizer(t)
	cat := fixtures.Catalog(t)

	var items []*domain.CatalogItem
	for _, id := range []int{fixtures.ZeusShared, fixtures.ZeusSharedAlt, fixtures.P250Shared} {
		item, err := cat.Get(id)
		require.NoError(t, err)
		items = append(items, item)
	}

	// Swedish sorts Ä and Ö after Z, root collation would not
	sorted := loc.SortByName(items, "sv")
	got := make([]string, len(sorted))
	for i, item := range sorted {
		got[i] = loc.Name(item.ID, "sv")
	}
	assert.Equal(t, []string{"Zebra", "Äpple", "Ögon"}, got)

	assert.Equal(t, fixtures.ZeusShared, items[0].ID, "input is not reordered")
}
