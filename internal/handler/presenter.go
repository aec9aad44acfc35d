package handler

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/inventory"
	"github.com/osse101/casevault/internal/vault"
)

// ItemResponse is a catalog item with its localized text
type ItemResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        domain.ItemType `json:"type"`
	Rarity      domain.Rarity   `json:"rarity,omitempty"`
	Tier        string          `json:"tier,omitempty"`
	Model       string          `json:"model,omitempty"`
	Category    string          `json:"category,omitempty"`
	Image       string          `json:"image,omitempty"`
	Teams       []string        `json:"teams,omitempty"`
	WearMin     *float64        `json:"wearMin,omitempty"`
	WearMax     *float64        `json:"wearMax,omitempty"`
	Contents    []int           `json:"contents,omitempty"`
	Specials    []int           `json:"specials,omitempty"`
	Free        bool            `json:"free,omitempty"`
	Base        bool            `json:"base,omitempty"`
}

// InventoryItemResponse is one owned instance with display data
type InventoryItemResponse struct {
	Index int `json:"index"`
	domain.ItemInstance
	Name     string          `json:"name"`
	Type     domain.ItemType `json:"type"`
	Rarity   domain.Rarity   `json:"rarity,omitempty"`
	Image    string          `json:"image,omitempty"`
	WearTier string          `json:"wearTier,omitempty"`
}

// InventoryResponse is the state of one owner's inventory
type InventoryResponse struct {
	OwnerID  string                  `json:"ownerId"`
	Version  int64                   `json:"version"`
	Capacity int                     `json:"capacity"`
	Size     int                     `json:"size"`
	Changed  bool                    `json:"changed"`
	Items    []InventoryItemResponse `json:"items"`
}

// UnlockResponse is an unlock result with the drawn item's display data
type UnlockResponse struct {
	*domain.UnlockResult
	Item ItemResponse `json:"item"`
}

// OpenContainerResponse is returned after opening an owned container
type OpenContainerResponse struct {
	Unlock    UnlockResponse    `json:"unlock"`
	Inventory InventoryResponse `json:"inventory"`
}

// Presenter turns domain values into localized API responses
type Presenter struct {
	localizer       *catalog.Localizer
	imageBaseURL    string
	defaultLanguage string
}

// NewPresenter creates a presenter. defaultLanguage is used when a request has no Accept-Language.
func NewPresenter(localizer *catalog.Localizer, imageBaseURL, defaultLanguage string) *Presenter {
	return &Presenter{
		localizer:       localizer,
		imageBaseURL:    imageBaseURL,
		defaultLanguage: defaultLanguage,
	}
}

func (p *Presenter) language(r *http.Request) string {
	if accept := r.Header.Get(HeaderAcceptLang); accept != "" {
		return accept
	}
	return p.defaultLanguage
}

// Item renders a catalog item for the request's language
func (p *Presenter) Item(r *http.Request, item *domain.CatalogItem) ItemResponse {
	text := p.localizer.Lookup(item.ID, p.language(r))
	resp := ItemResponse{
		ID:          item.ID,
		Name:        text.Name,
		Description: text.Desc,
		Type:        item.Type,
		Rarity:      item.Rarity,
		Model:       item.Model,
		Category:    item.Category,
		Image:       item.Image,
		Teams:       lo.Map(item.Teams, func(t domain.Team, _ int) string { return t.String() }),
		WearMin:     item.WearMin,
		WearMax:     item.WearMax,
		Contents:    item.Contents,
		Specials:    item.Specials,
		Free:        item.Free,
		Base:        item.Base,
	}
	if text.Category != "" {
		resp.Category = text.Category
	}
	if tier, ok := item.Rarity.Tier(); ok {
		resp.Tier = tier.String()
	}
	return resp
}

// Items renders a list of catalog items
func (p *Presenter) Items(r *http.Request, items []*domain.CatalogItem) []ItemResponse {
	return lo.Map(items, func(item *domain.CatalogItem, _ int) ItemResponse {
		return p.Item(r, item)
	})
}

// Entry renders one inventory slot, choosing the image by wear tier
func (p *Presenter) Entry(r *http.Request, e inventory.Entry) InventoryItemResponse {
	resp := InventoryItemResponse{
		Index:        e.Index,
		ItemInstance: e.Instance,
		Name:         p.localizer.Name(e.Item.ID, p.language(r)),
		Type:         e.Item.Type,
		Rarity:       e.Item.Rarity,
		Image:        catalog.ResolveImage(e.Item, e.Instance.Wear, p.imageBaseURL),
	}
	if e.Instance.Wear != nil {
		resp.WearTier = string(domain.WearTierFor(*e.Instance.Wear))
	}
	return resp
}

// Inventory renders a vault view
func (p *Presenter) Inventory(r *http.Request, view *vault.View) (InventoryResponse, error) {
	entries, err := view.Inventory.GetAll()
	if err != nil {
		return InventoryResponse{}, err
	}
	return InventoryResponse{
		OwnerID:  view.OwnerID,
		Version:  view.Version,
		Capacity: view.Inventory.Capacity(),
		Size:     view.Inventory.Len(),
		Changed:  view.Changed,
		Items: lo.Map(entries, func(e inventory.Entry, _ int) InventoryItemResponse {
			return p.Entry(r, e)
		}),
	}, nil
}
