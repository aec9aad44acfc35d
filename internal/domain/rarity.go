package domain

// Rarity is the colour code a catalog item is tagged with
type Rarity string

const (
	RarityCommon    Rarity = "#b0c3d9"
	RarityUncommon  Rarity = "#5e98d9"
	RarityRare      Rarity = "#4b69ff"
	RarityMythical  Rarity = "#8847ff"
	RarityLegendary Rarity = "#d32ce6"
	RarityAncient   Rarity = "#eb4b4b"
	RarityImmortal  Rarity = "#e4ae39"
)

// RarityTier is the ordered rarity scale used for unlock odds.
// TierSpecial never appears in catalog data; it is assigned to a container's special pool.
type RarityTier int

const (
	TierCommon RarityTier = iota
	TierUncommon
	TierRare
	TierMythical
	TierLegendary
	TierAncient
	TierImmortal
	TierSpecial
)

// TierCount is the number of tiers including TierSpecial
const TierCount = int(TierSpecial) + 1

var rarityTiers = map[Rarity]RarityTier{
	RarityCommon:    TierCommon,
	RarityUncommon:  TierUncommon,
	RarityRare:      TierRare,
	RarityMythical:  TierMythical,
	RarityLegendary: TierLegendary,
	RarityAncient:   TierAncient,
	RarityImmortal:  TierImmortal,
}

var tierNames = [TierCount]string{
	"common",
	"uncommon",
	"rare",
	"mythical",
	"legendary",
	"ancient",
	"immortal",
	"special",
}

// Tier maps a colour code to its tier. ok is false for unknown colours.
func (r Rarity) Tier() (RarityTier, bool) {
	t, ok := rarityTiers[r]
	return t, ok
}

// Valid reports whether r is one of the seven known colours
func (r Rarity) Valid() bool {
	_, ok := rarityTiers[r]
	return ok
}

// Order returns the 1-based display order of r, or 0 when r is unknown
func (r Rarity) Order() int {
	t, ok := rarityTiers[r]
	if !ok {
		return 0
	}
	return int(t) + 1
}

// String returns the lowercase tier name
func (t RarityTier) String() string {
	if t < 0 || int(t) >= TierCount {
		return "unknown"
	}
	return tierNames[t]
}

// SoundName collapses the tier onto the six sound categories; immortal shares ancient.
func (t RarityTier) SoundName() string {
	if t == TierImmortal {
		return TierAncient.String()
	}
	return t.String()
}
