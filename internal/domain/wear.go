package domain

// WearTier is the exterior condition bucket a wear value falls in
type WearTier string

const (
	WearFactoryNew    WearTier = "FN"
	WearMinimalWear   WearTier = "MW"
	WearFieldTested   WearTier = "FT"
	WearWellWorn      WearTier = "WW"
	WearBattleScarred WearTier = "BS"
)

// WearTierFor classifies a wear value. Values between two tier bounds
// (finer than the 6-digit resolution) fall into the higher tier.
func WearTierFor(wear float64) WearTier {
	switch {
	case wear <= MaxFactoryNewWear:
		return WearFactoryNew
	case wear <= MaxMinimalWearWear:
		return WearMinimalWear
	case wear <= MaxFieldTestedWear:
		return WearFieldTested
	case wear <= MaxWellWornWear:
		return WearWellWorn
	default:
		return WearBattleScarred
	}
}

// Name returns the display name of the tier
func (w WearTier) Name() string {
	switch w {
	case WearFactoryNew:
		return "Factory New"
	case WearMinimalWear:
		return "Minimal Wear"
	case WearFieldTested:
		return "Field-Tested"
	case WearWellWorn:
		return "Well-Worn"
	case WearBattleScarred:
		return "Battle-Scarred"
	default:
		return ""
	}
}
