package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/repository"
	"github.com/osse101/casevault/internal/vault"
)

// AddItemRequest is an item instance to add. Attribute rules are enforced by
// the inventory so that rejections carry their domain kind.
type AddItemRequest struct {
	ItemID   int                      `json:"id" validate:"required,gt=0"`
	Wear     *float64                 `json:"wear,omitempty"`
	Seed     *int                     `json:"seed,omitempty"`
	StatTrak *int                     `json:"stattrak,omitempty"`
	Nametag  *string                  `json:"nametag,omitempty"`
	Stickers []*domain.AppliedSticker `json:"stickers,omitempty" validate:"max=5"`
}

// Instance converts the request into an unequipped item instance
func (req AddItemRequest) Instance() domain.ItemInstance {
	return domain.ItemInstance{
		ItemID:   req.ItemID,
		Wear:     req.Wear,
		Seed:     req.Seed,
		StatTrak: req.StatTrak,
		Nametag:  req.Nametag,
		Stickers: req.Stickers,
	}
}

// EquipRequest selects the equip slot. An empty team is the shared slot.
type EquipRequest struct {
	Team string `json:"team,omitempty" validate:"team"`
}

// Slot returns the equip slot the request targets
func (req EquipRequest) Slot() domain.EquipSlot {
	team, ok := domain.ParseTeam(req.Team)
	if !ok {
		return domain.EquipSlotShared
	}
	return domain.SlotForTeam(team)
}

// UnlocksResponse is an owner's unlock history, newest first
type UnlocksResponse struct {
	OwnerID string                `json:"ownerId"`
	Unlocks []domain.UnlockRecord `json:"unlocks"`
}

// respondView renders a vault view or the error that produced it
func respondView(w http.ResponseWriter, r *http.Request, p *Presenter, op string, status int, view *vault.View, err error) {
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	resp, err := p.Inventory(r, view)
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	respondJSON(w, status, resp)
}

// HandleGetInventory returns an owner's inventory
func HandleGetInventory(svc vault.Service, p *Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Get(r.Context(), chi.URLParam(r, ParamOwner))
		respondView(w, r, p, OpGetInventory, http.StatusOK, view, err)
	}
}

// HandleAddItem validates an item instance and prepends it.
// A full inventory answers 200 with changed=false.
func HandleAddItem(svc vault.Service, p *Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpAddItem); err != nil {
			return
		}

		view, err := svc.Add(r.Context(), chi.URLParam(r, ParamOwner), req.Instance())
		status := http.StatusOK
		if err == nil && view.Changed {
			status = http.StatusCreated
		}
		respondView(w, r, p, OpAddItem, status, view, err)
	}
}

// HandleRemoveItem removes the instance at index. Out of range is a no-op.
func HandleRemoveItem(svc vault.Service, p *Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := GetPathInt(r, w, ParamIndex)
		if !ok {
			return
		}
		view, err := svc.Remove(r.Context(), chi.URLParam(r, ParamOwner), index)
		respondView(w, r, p, OpRemoveItem, http.StatusOK, view, err)
	}
}

// HandleEquipItem equips the instance at index in the requested slot
func HandleEquipItem(svc vault.Service, p *Presenter) http.HandlerFunc {
	return handleEquipToggle(p, OpEquipItem, svc.Equip)
}

// HandleUnequipItem clears the requested slot flag of the instance at index
func HandleUnequipItem(svc vault.Service, p *Presenter) http.HandlerFunc {
	return handleEquipToggle(p, OpUnequipItem, svc.Unequip)
}

type equipFunc func(ctx context.Context, ownerID string, index int, slot domain.EquipSlot) (*vault.View, error)

func handleEquipToggle(p *Presenter, op string, action equipFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := GetPathInt(r, w, ParamIndex)
		if !ok {
			return
		}
		var req EquipRequest
		if err := DecodeOptionalRequest(r, w, &req, op); err != nil {
			return
		}

		view, err := action(r.Context(), chi.URLParam(r, ParamOwner), index, req.Slot())
		respondView(w, r, p, op, http.StatusOK, view, err)
	}
}

// HandleOpenContainer opens the owned container at index and stores the drop
func HandleOpenContainer(svc vault.Service, cat catalog.Lookup, p *Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := GetPathInt(r, w, ParamIndex)
		if !ok {
			return
		}

		res, err := svc.OpenContainer(r.Context(), chi.URLParam(r, ParamOwner), index)
		if err != nil {
			respondServiceError(w, r, OpOpenContainer, err)
			return
		}

		item, err := cat.Get(res.Unlock.ItemID)
		if err != nil {
			respondServiceError(w, r, OpOpenContainer, err)
			return
		}
		inv, err := p.Inventory(r, &res.View)
		if err != nil {
			respondServiceError(w, r, OpOpenContainer, err)
			return
		}

		respondJSON(w, http.StatusOK, OpenContainerResponse{
			Unlock:    UnlockResponse{UnlockResult: res.Unlock, Item: p.Item(r, item)},
			Inventory: inv,
		})
	}
}

// HandleListUnlocks returns the owner's unlock history, newest first
func HandleListUnlocks(svc vault.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetOptionalQueryInt(r, w, ParamLimit, repository.DefaultUnlockListLimit, 1, MaxUnlockListLimit)
		if !ok {
			return
		}

		owner := chi.URLParam(r, ParamOwner)
		records, err := svc.Unlocks(r.Context(), owner, limit)
		if err != nil {
			respondServiceError(w, r, OpListUnlocks, err)
			return
		}

		respondJSON(w, http.StatusOK, UnlocksResponse{OwnerID: owner, Unlocks: records})
	}
}

// HandleDeleteInventory drops an owner's inventory and unlock history
func HandleDeleteInventory(svc vault.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, ParamOwner)); err != nil {
			respondServiceError(w, r, OpDeleteInventory, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
