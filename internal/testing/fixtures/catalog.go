// Package fixtures provides a small, hand-checked item catalog for tests and benchmarks.
package fixtures

import (
	"testing"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
)

// Item ids in the fixture catalog
const (
	SafariMeshAK  = 100 // weapon, common, ak47, T
	DesertStormM4 = 101 // weapon, common, m4a4, CT
	RedlineAK     = 102 // weapon, rare, ak47, T, wear [0.1, 0.7]
	DragonLoreAWP = 103 // weapon, immortal, awp, T+CT
	ZeusShared    = 110 // weapon, common, taser, no teams
	ZeusSharedAlt = 111 // weapon, uncommon, taser, no teams
	P250Shared    = 112 // weapon, common, p250, no teams

	KarambitDoppler = 200 // melee, ancient, T+CT
	BayonetFade     = 201 // melee, ancient, T+CT
	SportGlovesVice = 300 // gloves, immortal, T+CT, wear [0.06, 0.8]
	MusicKitDaniel  = 400 // musickit, rare
	MusicKitOther   = 401 // musickit, rare
	StickerCrown    = 500 // sticker, legendary
	StickerHowl     = 501 // sticker, immortal
	GraffitiSmile   = 600 // graffiti, common
	AgentBloody     = 700 // agent, T
	AgentSeal       = 701 // agent, CT
	CoinService     = 800 // collectible

	WeaponCase     = 900 // container: contents 100,102,103 specials 200,300
	StickerCapsule = 901 // container: contents 500,501
	CaseKey        = 902 // containerkey
	HollowCase     = 903 // container without contents
	SpecialsOnly   = 904 // container: empty contents, specials 201
)

// ImageBaseURL is the base used for generated wear-variant images
const ImageBaseURL = "https://cdn.example.test/images"

// Items returns a fresh copy of the fixture catalog entries
func Items() []domain.CatalogItem {
	t := []domain.Team{domain.TeamT}
	ct := []domain.Team{domain.TeamCT}
	both := []domain.Team{domain.TeamT, domain.TeamCT}

	return []domain.CatalogItem{
		{ID: SafariMeshAK, Name: "AK-47 | Safari Mesh", Type: domain.ItemTypeWeapon, Rarity: domain.RarityCommon, Model: "ak47", Teams: t, WearMin: domain.Ptr(0.06), WearMax: domain.Ptr(0.8), Image: "ak47_safari.png", LocalImage: domain.ImageLight | domain.ImageMedium | domain.ImageHeavy},
		{ID: DesertStormM4, Name: "M4A4 | Desert Storm", Type: domain.ItemTypeWeapon, Rarity: domain.RarityCommon, Model: "m4a4", Teams: ct, Image: "m4a4_storm.png", LocalImage: domain.ImageLight},
		{ID: RedlineAK, Name: "AK-47 | Redline", Type: domain.ItemTypeWeapon, Rarity: domain.RarityRare, Model: "ak47", Teams: t, WearMin: domain.Ptr(0.1), WearMax: domain.Ptr(0.7), Image: "ak47_redline.png"},
		{ID: DragonLoreAWP, Name: "AWP | Dragon Lore", Type: domain.ItemTypeWeapon, Rarity: domain.RarityImmortal, Model: "awp", Teams: both, WearMin: domain.Ptr(0.0), WearMax: domain.Ptr(0.7), Image: "awp_dlore.png"},
		{ID: ZeusShared, Name: "Zeus x27 | Electric", Type: domain.ItemTypeWeapon, Rarity: domain.RarityCommon, Model: "taser"},
		{ID: ZeusSharedAlt, Name: "Zeus x27 | Olympus", Type: domain.ItemTypeWeapon, Rarity: domain.RarityUncommon, Model: "taser"},
		{ID: P250Shared, Name: "P250 | Sand Dune", Type: domain.ItemTypeWeapon, Rarity: domain.RarityCommon, Model: "p250"},
		{ID: KarambitDoppler, Name: "Karambit | Doppler", Type: domain.ItemTypeMelee, Rarity: domain.RarityAncient, Model: "karambit", Teams: both},
		{ID: BayonetFade, Name: "Bayonet | Fade", Type: domain.ItemTypeMelee, Rarity: domain.RarityAncient, Model: "bayonet", Teams: both},
		{ID: SportGlovesVice, Name: "Sport Gloves | Vice", Type: domain.ItemTypeGloves, Rarity: domain.RarityImmortal, Teams: both, WearMin: domain.Ptr(0.06), WearMax: domain.Ptr(0.8)},
		{ID: MusicKitDaniel, Name: "Music Kit | Daniel Sadowski", Type: domain.ItemTypeMusicKit, Rarity: domain.RarityRare},
		{ID: MusicKitOther, Name: "Music Kit | Noisia", Type: domain.ItemTypeMusicKit, Rarity: domain.RarityRare},
		{ID: StickerCrown, Name: "Sticker | Crown (Foil)", Type: domain.ItemTypeSticker, Rarity: domain.RarityLegendary},
		{ID: StickerHowl, Name: "Sticker | Howl", Type: domain.ItemTypeSticker, Rarity: domain.RarityImmortal},
		{ID: GraffitiSmile, Name: "Graffiti | Smile", Type: domain.ItemTypeGraffiti, Rarity: domain.RarityCommon},
		{ID: AgentBloody, Name: "Sir Bloody Miami Darryl", Type: domain.ItemTypeAgent, Rarity: domain.RarityImmortal, Teams: t},
		{ID: AgentSeal, Name: "Lt. Commander Ricksaw", Type: domain.ItemTypeAgent, Rarity: domain.RarityImmortal, Teams: ct},
		{ID: CoinService, Name: "Service Medal", Type: domain.ItemTypeCollectible},
		{ID: WeaponCase, Name: "Arms Deal Case", Type: domain.ItemTypeContainer, Contents: []int{SafariMeshAK, RedlineAK, DragonLoreAWP}, Specials: []int{KarambitDoppler, SportGlovesVice}},
		{ID: StickerCapsule, Name: "Sticker Capsule", Type: domain.ItemTypeContainer, Contents: []int{StickerCrown, StickerHowl}},
		{ID: CaseKey, Name: "Arms Deal Case Key", Type: domain.ItemTypeContainerKey},
		{ID: HollowCase, Name: "Hollow Case", Type: domain.ItemTypeContainer},
		{ID: SpecialsOnly, Name: "Knife Crate", Type: domain.ItemTypeContainer, Contents: []int{}, Specials: []int{BayonetFade}},
	}
}

// Catalog builds the fixture catalog or fails the test
func Catalog(tb testing.TB) *catalog.Catalog {
	tb.Helper()
	cat, err := catalog.New(Items())
	if err != nil {
		tb.Fatalf("fixture catalog: %v", err)
	}
	return cat
}
