package domain

// Wear (float) bounds
const (
	MinWear = 0.0
	MaxWear = 1.0

	// DefaultMinWear and DefaultMaxWear are the bounds most skins ship with
	DefaultMinWear = 0.06
	DefaultMaxWear = 0.8

	// WearDecimals is how many decimal digits a generated wear keeps (0.000001 resolution)
	WearDecimals = 6
)

// Wear tier bounds (inclusive)
const (
	MinFactoryNewWear    = MinWear
	MaxFactoryNewWear    = 0.07
	MinMinimalWearWear   = 0.070001
	MaxMinimalWearWear   = 0.15
	MinFieldTestedWear   = 0.150001
	MaxFieldTestedWear   = 0.37
	MinWellWornWear      = 0.370001
	MaxWellWornWear      = 0.44
	MinBattleScarredWear = 0.440001
	MaxBattleScarredWear = MaxWear
)

// Pattern seed bounds
const (
	MinSeed = 1
	MaxSeed = 1000
)

// StatTrak counter bounds
const (
	MinStatTrak = 0
	MaxStatTrak = 999999
)

// Sticker slot limits
const (
	MaxStickers     = 5
	MinStickerWear  = 0.0
	MaxStickerWear  = 0.9
	MaxNametagRunes = 20
)

// DefaultInventoryCapacity is the soft ceiling on inventory size
const DefaultInventoryCapacity = 256

// Generated wear-variant image flags (CatalogItem.LocalImage bitmask)
const (
	ImageLight  = 1 << 0
	ImageMedium = 1 << 1
	ImageHeavy  = 1 << 2
)
