package lootbox

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/testing/fixtures"
	"github.com/osse101/casevault/internal/utils"
)

const (
	threeTierCase = 950 // common, rare, immortal, no specials
	unrankedCase  = 951 // one collectible without rarity plus a common weapon
	onlyUnranked  = 952 // nothing drawable
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	items := append(fixtures.Items(),
		domain.CatalogItem{ID: threeTierCase, Name: "Three Tier Case", Type: domain.ItemTypeContainer,
			Contents: []int{fixtures.SafariMeshAK, fixtures.RedlineAK, fixtures.DragonLoreAWP}},
		domain.CatalogItem{ID: unrankedCase, Name: "Medal Case", Type: domain.ItemTypeContainer,
			Contents: []int{fixtures.CoinService, fixtures.P250Shared}},
		domain.CatalogItem{ID: onlyUnranked, Name: "Coin Case", Type: domain.ItemTypeContainer,
			Contents: []int{fixtures.CoinService}},
	)
	cat, err := catalog.New(items)
	require.NoError(t, err)
	return cat
}

func newTestService(t *testing.T, cat *catalog.Catalog, src utils.RandomSource) Service {
	t.Helper()
	svc, err := NewService(cat, attribute.NewChecker(cat), WithRandomSource(src))
	require.NoError(t, err)
	return svc
}

func TestUnlock_Distribution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping distribution test in short mode")
	}

	cat := testCatalog(t)
	svc := newTestService(t, cat, utils.NewRandomSource(42))

	const runs = 100_000
	counts := map[int]int{}
	for i := 0; i < runs; i++ {
		res, err := svc.Unlock(context.Background(), threeTierCase)
		require.NoError(t, err)
		counts[res.ItemID]++
	}

	// 0.8 : 0.16 : 0.032 normalized
	total := 0.8 + 0.16 + 0.032
	expected := map[int]float64{
		fixtures.SafariMeshAK:  0.8 / total,
		fixtures.RedlineAK:     0.16 / total,
		fixtures.DragonLoreAWP: 0.032 / total,
	}
	for id, want := range expected {
		got := float64(counts[id]) / runs
		assert.InDelta(t, want, got, 0.005, "item %d", id)
	}

	// common:rare:immortal is about 25:5:1
	assert.InDelta(t, 5.0, float64(counts[fixtures.SafariMeshAK])/float64(counts[fixtures.RedlineAK]), 0.3)
	assert.InDelta(t, 5.0, float64(counts[fixtures.RedlineAK])/float64(counts[fixtures.DragonLoreAWP]), 0.6)
}

func TestUnlock_RoundTripValidates(t *testing.T) {
	cat := testCatalog(t)
	svc := newTestService(t, cat, utils.NewRandomSource(7))
	ctx := context.Background()

	containers := []int{fixtures.WeaponCase, fixtures.StickerCapsule, fixtures.SpecialsOnly, threeTierCase, unrankedCase}
	for _, id := range containers {
		for i := 0; i < 2000; i++ {
			res, err := svc.Unlock(ctx, id)
			require.NoError(t, err)
			require.NoError(t, svc.ValidateUnlocked(ctx, id, res), "container %d result %+v", id, res)
		}
	}
}

func TestUnlock_ScriptedDraw(t *testing.T) {
	cat := testCatalog(t)

	t.Run("common weapon with truncated wear", func(t *testing.T) {
		src := &utils.SequenceSource{
			// tier, stattrak, wear
			Floats: []float64{0.0, 0.5, 0.123456789},
			// item, seed
			Ints: []int{0, 41},
		}
		svc := newTestService(t, cat, src)

		res, err := svc.Unlock(context.Background(), fixtures.WeaponCase)
		require.NoError(t, err)

		assert.Equal(t, fixtures.SafariMeshAK, res.ItemID)
		assert.False(t, res.Special)
		assert.Equal(t, "common", res.RarityForSoundEffect)
		require.NotNil(t, res.Attributes.Seed)
		assert.Equal(t, 42, *res.Attributes.Seed)
		assert.Nil(t, res.Attributes.StatTrak)
		require.NotNil(t, res.Attributes.Wear)
		assert.Equal(t, 0.151358, *res.Attributes.Wear)
	})

	t.Run("stattrak minted at zero", func(t *testing.T) {
		src := &utils.SequenceSource{
			Floats: []float64{0.0, 0.05, 0.0},
			Ints:   []int{0, 0},
		}
		svc := newTestService(t, cat, src)

		res, err := svc.Unlock(context.Background(), fixtures.WeaponCase)
		require.NoError(t, err)
		require.NotNil(t, res.Attributes.StatTrak)
		assert.Equal(t, 0, *res.Attributes.StatTrak)
		assert.Equal(t, 1, *res.Attributes.Seed)
		assert.Equal(t, 0.06, *res.Attributes.Wear)
	})

	t.Run("roll past last threshold falls back to last tier", func(t *testing.T) {
		src := &utils.SequenceSource{
			Floats: []float64{1.0},
			Ints:   []int{1},
		}
		svc := newTestService(t, cat, src)

		res, err := svc.Unlock(context.Background(), fixtures.WeaponCase)
		require.NoError(t, err)

		assert.Equal(t, fixtures.SportGlovesVice, res.ItemID)
		assert.True(t, res.Special)
		assert.Equal(t, "ancient", res.RarityForSoundEffect, "immortal collapses onto the ancient sound")
		assert.Nil(t, res.Attributes.StatTrak, "gloves never carry stattrak")
		require.NotNil(t, res.Attributes.Wear)
		assert.Equal(t, 0.06, *res.Attributes.Wear)
	})

	t.Run("sticker has no attributes", func(t *testing.T) {
		src := &utils.SequenceSource{Floats: []float64{0.99}, Ints: []int{0}}
		svc := newTestService(t, cat, src)

		res, err := svc.Unlock(context.Background(), fixtures.StickerCapsule)
		require.NoError(t, err)
		assert.Equal(t, fixtures.StickerHowl, res.ItemID)
		assert.Equal(t, domain.UnlockAttributes{}, res.Attributes)
	})

	t.Run("specials only container", func(t *testing.T) {
		svc := newTestService(t, cat, &utils.SequenceSource{})

		res, err := svc.Unlock(context.Background(), fixtures.SpecialsOnly)
		require.NoError(t, err)
		assert.Equal(t, fixtures.BayonetFade, res.ItemID)
		assert.True(t, res.Special)
	})

	t.Run("unranked contents are skipped", func(t *testing.T) {
		svc := newTestService(t, cat, &utils.SequenceSource{Floats: []float64{0.99}})

		res, err := svc.Unlock(context.Background(), unrankedCase)
		require.NoError(t, err)
		assert.Equal(t, fixtures.P250Shared, res.ItemID)
	})
}

func TestUnlock_Errors(t *testing.T) {
	cat := testCatalog(t)
	svc := newTestService(t, cat, utils.NewRandomSource(1))

	tests := []struct {
		name string
		id   int
		want error
	}{
		{"unknown id", 12345, domain.ErrNotFound},
		{"not a container", fixtures.SafariMeshAK, domain.ErrNotAContainer},
		{"container key", fixtures.CaseKey, domain.ErrNotAContainer},
		{"container without contents", fixtures.HollowCase, domain.ErrNotAContainer},
		{"nothing drawable", onlyUnranked, domain.ErrNotAContainer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Unlock(context.Background(), tt.id)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
		})
	}
}

func TestValidateUnlocked_Rejections(t *testing.T) {
	cat := testCatalog(t)
	svc := newTestService(t, cat, utils.NewRandomSource(1))

	tests := []struct {
		name      string
		container int
		result    domain.UnlockResult
		want      error
	}{
		{
			name:      "foreign item",
			container: fixtures.WeaponCase,
			result:    domain.UnlockResult{ItemID: fixtures.DesertStormM4},
			want:      domain.ErrForeignItem,
		},
		{
			name:      "not a container",
			container: fixtures.SafariMeshAK,
			result:    domain.UnlockResult{ItemID: fixtures.SafariMeshAK},
			want:      domain.ErrNotAContainer,
		},
		{
			name:      "unknown container",
			container: 4242,
			result:    domain.UnlockResult{ItemID: fixtures.SafariMeshAK},
			want:      domain.ErrNotFound,
		},
		{
			name:      "wear above item bound",
			container: fixtures.WeaponCase,
			result: domain.UnlockResult{ItemID: fixtures.RedlineAK, Attributes: domain.UnlockAttributes{
				Wear: domain.Ptr(0.75),
			}},
			want: domain.ErrOutOfRange,
		},
		{
			name:      "seed out of range",
			container: fixtures.WeaponCase,
			result: domain.UnlockResult{ItemID: fixtures.SafariMeshAK, Attributes: domain.UnlockAttributes{
				Seed: domain.Ptr(1001),
			}},
			want: domain.ErrOutOfRange,
		},
		{
			name:      "seed on a sticker",
			container: fixtures.StickerCapsule,
			result: domain.UnlockResult{ItemID: fixtures.StickerCrown, Attributes: domain.UnlockAttributes{
				Seed: domain.Ptr(5),
			}},
			want: domain.ErrUnsupported,
		},
		{
			name:      "special item accepted",
			container: fixtures.WeaponCase,
			result: domain.UnlockResult{ItemID: fixtures.KarambitDoppler, Special: true, Attributes: domain.UnlockAttributes{
				Seed: domain.Ptr(500), Wear: domain.Ptr(0.5), StatTrak: domain.Ptr(0),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateUnlocked(context.Background(), tt.container, &tt.result)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOdds(t *testing.T) {
	cat := testCatalog(t)
	svc := newTestService(t, cat, utils.NewRandomSource(1))

	odds, err := svc.Odds(fixtures.WeaponCase)
	require.NoError(t, err)
	require.Len(t, odds, 4)

	tiers := make([]string, 0, len(odds))
	sum := 0.0
	for _, o := range odds {
		tiers = append(tiers, o.Tier)
		sum += o.Probability
	}
	assert.Equal(t, []string{"common", "rare", "immortal", "special"}, tiers)
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Equal(t, []int{fixtures.KarambitDoppler, fixtures.SportGlovesVice}, odds[3].Items)

	// each present tier is a fifth of the one before it
	for i := 1; i < len(odds); i++ {
		assert.InDelta(t, 0.2, odds[i].Probability/odds[i-1].Probability, 1e-9)
	}
}

func TestContents_CachedTableIsShared(t *testing.T) {
	cat := testCatalog(t)
	svc := newTestService(t, cat, utils.NewRandomSource(1))

	first, err := svc.Contents(threeTierCase)
	require.NoError(t, err)
	second, err := svc.Contents(threeTierCase)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1.0, math.Round(first[len(first)-1].CumulProb*1e9)/1e9)

	_, err = svc.Contents(fixtures.CaseKey)
	assert.ErrorIs(t, err, domain.ErrNotAContainer)
}

func TestListContents(t *testing.T) {
	cat := testCatalog(t)
	svc := newTestService(t, cat, utils.NewRandomSource(1))

	ids := func(items []*domain.CatalogItem) []int {
		out := make([]int, len(items))
		for i, item := range items {
			out[i] = item.ID
		}
		return out
	}

	all, err := svc.ListContents(fixtures.WeaponCase, false)
	require.NoError(t, err)
	assert.Equal(t, []int{
		fixtures.SafariMeshAK,
		fixtures.RedlineAK,
		fixtures.KarambitDoppler,
		fixtures.DragonLoreAWP,
		fixtures.SportGlovesVice,
	}, ids(all))

	regular, err := svc.ListContents(fixtures.WeaponCase, true)
	require.NoError(t, err)
	assert.Equal(t, []int{fixtures.SafariMeshAK, fixtures.RedlineAK, fixtures.DragonLoreAWP}, ids(regular))

	unranked, err := svc.ListContents(unrankedCase, false)
	require.NoError(t, err)
	assert.Equal(t, []int{fixtures.CoinService, fixtures.P250Shared}, ids(unranked), "unknown rarity sorts first")
}

func TestSelectTier(t *testing.T) {
	table := &oddsTable{Buckets: []TierBucket{
		{Tier: domain.TierCommon, CumulProb: 0.5},
		{Tier: domain.TierRare, CumulProb: 0.9},
		{Tier: domain.TierImmortal, CumulProb: 0.9999999},
	}}

	tests := []struct {
		roll float64
		want domain.RarityTier
	}{
		{0, domain.TierCommon},
		{0.5, domain.TierCommon},
		{0.5000001, domain.TierRare},
		{0.9, domain.TierRare},
		{0.95, domain.TierImmortal},
		{0.99999995, domain.TierImmortal},
		{1.0, domain.TierImmortal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.selectTier(tt.roll).Tier, "roll %v", tt.roll)
	}
}
