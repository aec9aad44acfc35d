package catalog

import (
	"strconv"
	"strings"

	"github.com/osse101/casevault/internal/domain"
)

// ResolveImage returns the image URL for an item with the given wear.
// Items with generated variants get the one matching their wear tier:
// FN/MW light, FT medium, WW/BS heavy. Without a matching variant the light
// one is preferred, then the item's own image.
func ResolveImage(item *domain.CatalogItem, wear *float64, baseURL string) string {
	if item.LocalImage == 0 || wear == nil {
		return item.Image
	}

	has := func(flag int) bool { return item.LocalImage&flag != 0 }

	switch domain.WearTierFor(*wear) {
	case domain.WearFactoryNew, domain.WearMinimalWear:
		if has(domain.ImageLight) {
			return variantURL(baseURL, item.ID, imageSuffixLight)
		}
	case domain.WearFieldTested:
		if has(domain.ImageMedium) {
			return variantURL(baseURL, item.ID, imageSuffixMedium)
		}
	default:
		if has(domain.ImageHeavy) {
			return variantURL(baseURL, item.ID, imageSuffixHeavy)
		}
	}

	if has(domain.ImageLight) {
		return variantURL(baseURL, item.ID, imageSuffixLight)
	}
	return item.Image
}

func variantURL(baseURL string, id int, suffix string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strconv.Itoa(id) + suffix
}
