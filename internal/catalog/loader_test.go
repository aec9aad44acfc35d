package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/testing/fixtures"
)

const validCatalog = `{
	"version": "1",
	"items": [
		{"id": 1, "name": "AK-47 | Redline", "type": "weapon", "rarity": "#4b69ff", "model": "ak47", "teams": [0], "wearMin": 0.1, "wearMax": 0.7},
		{"id": 2, "name": "Karambit", "type": "melee", "rarity": "#eb4b4b", "teams": [0, 1]},
		{"id": 3, "name": "Case", "type": "container", "contents": [1], "specials": [2]}
	],
	"localizations": {
		"en": {"1": {"name": "AK-47 | Redline"}},
		"de": {"1": {"name": "AK-47 | Rotlinie"}}
	}
}`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), catalog.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_Load(t *testing.T) {
	loader := catalog.NewLoader()

	t.Run("valid file", func(t *testing.T) {
		cfg, err := loader.Load(writeTemp(t, validCatalog))
		require.NoError(t, err)
		assert.Equal(t, "1", cfg.Version)
		require.Len(t, cfg.Items, 3)
		assert.Equal(t, domain.RarityRare, cfg.Items[0].Rarity)
		require.NotNil(t, cfg.Items[0].WearMin)
		assert.Equal(t, 0.1, *cfg.Items[0].WearMin)
		assert.Equal(t, []domain.Team{domain.TeamT}, cfg.Items[0].Teams)
		assert.Equal(t, "AK-47 | Rotlinie", cfg.Localizations["de"]["1"].Name)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := loader.Load("/nonexistent/catalog.json")
		assert.ErrorContains(t, err, "failed to read catalog file")
	})

	t.Run("schema violation", func(t *testing.T) {
		_, err := loader.Load(writeTemp(t, `{"items": [{"id": 1, "name": "x", "type": "hat"}]}`))
		assert.ErrorContains(t, err, "schema validation failed")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := loader.Load(writeTemp(t, `{invalid`))
		assert.Error(t, err)
	})
}

func TestLoader_Validate(t *testing.T) {
	loader := catalog.NewLoader()

	base := func() *catalog.Config {
		return &catalog.Config{Items: fixtures.Items()}
	}

	tests := []struct {
		name    string
		mutate  func(c *catalog.Config)
		wantErr string
	}{
		{name: "fixture is valid", mutate: func(c *catalog.Config) {}},
		{name: "nil config", wantErr: "config is nil"},
		{name: "no items", mutate: func(c *catalog.Config) { c.Items = nil }, wantErr: "no items defined"},
		{
			name: "duplicate id",
			mutate: func(c *catalog.Config) {
				c.Items = append(c.Items, domain.CatalogItem{ID: fixtures.RedlineAK, Name: "dup", Type: domain.ItemTypeTool})
			},
			wantErr: "defined more than once",
		},
		{
			name: "unknown type",
			mutate: func(c *catalog.Config) {
				c.Items = append(c.Items, domain.CatalogItem{ID: 5000, Name: "hat", Type: "hat"})
			},
			wantErr: "item_type",
		},
		{
			name: "unknown rarity",
			mutate: func(c *catalog.Config) {
				c.Items = append(c.Items, domain.CatalogItem{ID: 5000, Name: "x", Type: domain.ItemTypeTool, Rarity: "#123456"})
			},
			wantErr: "rarity",
		},
		{
			name: "inverted wear bounds",
			mutate: func(c *catalog.Config) {
				c.Items = append(c.Items, domain.CatalogItem{ID: 5000, Name: "x", Type: domain.ItemTypeWeapon, WearMin: domain.Ptr(0.8), WearMax: domain.Ptr(0.2)})
			},
			wantErr: "above wearMax",
		},
		{
			name: "dangling container reference",
			mutate: func(c *catalog.Config) {
				c.Items = append(c.Items, domain.CatalogItem{ID: 5000, Name: "box", Type: domain.ItemTypeContainer, Contents: []int{777}})
			},
			wantErr: "references unknown item 777",
		},
		{
			name: "dangling special reference",
			mutate: func(c *catalog.Config) {
				c.Items = append(c.Items, domain.CatalogItem{ID: 5000, Name: "box", Type: domain.ItemTypeContainer, Contents: []int{}, Specials: []int{778}})
			},
			wantErr: "references unknown item 778",
		},
		{
			name: "contained item without rarity",
			mutate: func(c *catalog.Config) {
				c.Items = append(c.Items, domain.CatalogItem{ID: 5000, Name: "box", Type: domain.ItemTypeContainer, Contents: []int{fixtures.CoinService}})
			},
			wantErr: "without a known rarity",
		},
		{
			name: "contents on a non-container",
			mutate: func(c *catalog.Config) {
				c.Items = append(c.Items, domain.CatalogItem{ID: 5000, Name: "key", Type: domain.ItemTypeContainerKey, Contents: []int{fixtures.SafariMeshAK}})
			},
			wantErr: "lists contents",
		},
		{
			name: "localization for unknown item",
			mutate: func(c *catalog.Config) {
				c.Localizations = map[string]map[string]catalog.Localization{"en": {"31337": {Name: "ghost"}}}
			},
			wantErr: "unknown item 31337",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *catalog.Config
			if tt.mutate != nil {
				cfg = base()
				tt.mutate(cfg)
			}

			err := loader.Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, catalog.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	cat, loc, err := catalog.LoadFile(context.Background(), catalog.NewLoader(), writeTemp(t, validCatalog))
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, []string{"en", "de"}, loc.Languages())
	assert.Equal(t, "AK-47 | Rotlinie", loc.Name(1, "de-AT"))
}

func TestLoadFile_ShippedCatalog(t *testing.T) {
	cat, loc, err := catalog.LoadFile(context.Background(), catalog.NewLoader(), filepath.Join("..", "..", "configs", catalog.ConfigFileName))
	require.NoError(t, err)

	assert.Len(t, cat.Containers(), 2)
	assert.Equal(t, "Waffenkiste", loc.Name(9001, "de"))
	assert.Equal(t, "Caixa de Armas", loc.Name(9001, "pt-BR"))
}
