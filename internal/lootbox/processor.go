package lootbox

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/utils"
)

// ============================================================================
// Runtime / cache types (built once per container, read-only thereafter)
// ============================================================================

// TierBucket is one present rarity tier of a container with its odds.
type TierBucket struct {
	Tier        domain.RarityTier
	Items       []*domain.CatalogItem
	Probability float64
	CumulProb   float64 // cumulative probability up to and including this tier
}

// oddsTable is the pre-computed draw table of one container.
type oddsTable struct {
	ContainerID int
	Buckets     []TierBucket // ascending tier order, empty tiers dropped
}

// ============================================================================
// Table builder
// ============================================================================

// partition buckets regular contents by rarity tier and every special into TierSpecial.
// Regular items with no known rarity are skipped.
func partition(lookup catalog.Lookup, container *domain.CatalogItem) ([domain.TierCount][]*domain.CatalogItem, error) {
	var tiers [domain.TierCount][]*domain.CatalogItem

	for _, id := range container.Contents {
		item, err := lookup.Get(id)
		if err != nil {
			return tiers, fmt.Errorf(ErrFmtContainedItem, container.ID, err)
		}
		tier, ok := item.Rarity.Tier()
		if !ok {
			slog.Warn(LogMsgUnrankedContentItem, LogFieldContainer, container.ID, LogFieldItem, id)
			continue
		}
		tiers[tier] = append(tiers[tier], item)
	}

	for _, id := range container.Specials {
		item, err := lookup.Get(id)
		if err != nil {
			return tiers, fmt.Errorf(ErrFmtContainedItem, container.ID, err)
		}
		tiers[domain.TierSpecial] = append(tiers[domain.TierSpecial], item)
	}

	return tiers, nil
}

// buildOddsTable assigns BaseOdd / OddDivisor^k to the k-th present tier and normalizes.
func buildOddsTable(lookup catalog.Lookup, container *domain.CatalogItem) (*oddsTable, error) {
	tiers, err := partition(lookup, container)
	if err != nil {
		return nil, err
	}

	table := &oddsTable{ContainerID: container.ID}
	total := 0.0
	for tier, items := range tiers {
		if len(items) == 0 {
			continue
		}
		weight := BaseOdd / math.Pow(OddDivisor, float64(len(table.Buckets)))
		total += weight
		table.Buckets = append(table.Buckets, TierBucket{
			Tier:        domain.RarityTier(tier),
			Items:       items,
			Probability: weight,
		})
	}

	if len(table.Buckets) == 0 {
		return nil, fmt.Errorf(ErrFmtEmptyContainer, domain.ErrNotAContainer, container.ID)
	}

	cumul := 0.0
	for i := range table.Buckets {
		table.Buckets[i].Probability /= total
		cumul += table.Buckets[i].Probability
		table.Buckets[i].CumulProb = cumul
	}

	return table, nil
}

// ============================================================================
// Draw pipeline
// ============================================================================

// selectTier returns the first bucket whose cumulative probability meets or
// exceeds roll. A roll above every threshold (float residue) lands on the last bucket.
func (t *oddsTable) selectTier(roll float64) *TierBucket {
	lo, hi := 0, len(t.Buckets)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if t.Buckets[mid].CumulProb < roll {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return &t.Buckets[lo]
}

// draw runs tier, item and attribute rolls in that order and reports the tier drawn.
func (t *oddsTable) draw(rnd utils.RandomSource) (*domain.UnlockResult, domain.RarityTier) {
	bucket := t.selectTier(rnd.Float64())
	item := bucket.Items[rnd.IntN(len(bucket.Items))]

	result := &domain.UnlockResult{
		ItemID:     item.ID,
		Special:    bucket.Tier == domain.TierSpecial,
		Attributes: synthesizeAttributes(item, rnd),
	}
	if tier, ok := item.Rarity.Tier(); ok {
		result.RarityForSoundEffect = tier.SoundName()
	}
	return result, bucket.Tier
}

// synthesizeAttributes rolls seed, stattrak and wear for the capabilities of item.
func synthesizeAttributes(item *domain.CatalogItem, rnd utils.RandomSource) domain.UnlockAttributes {
	caps := item.Capabilities()
	var attrs domain.UnlockAttributes

	if caps.Seed {
		attrs.Seed = domain.Ptr(utils.RandomInt(rnd, domain.MinSeed, domain.MaxSeed))
	}
	if caps.StatTrak && rnd.Float64() < StatTrakOdd {
		attrs.StatTrak = domain.Ptr(0)
	}
	if caps.Wear {
		attrs.Wear = domain.Ptr(rollWear(item, rnd))
	}

	return attrs
}

// rollWear draws uniformly in the item's wear bounds and truncates to WearDecimals.
// Truncation can push a value just under a lower bound with more decimals, so the result is clamped.
func rollWear(item *domain.CatalogItem, rnd utils.RandomSource) float64 {
	lo, hi := item.WearBounds()
	wear := utils.TruncateDecimal(utils.RandomFloat(rnd, lo, hi), domain.WearDecimals)
	return math.Min(math.Max(wear, lo), hi)
}
