package handler

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/logger"
	"github.com/osse101/casevault/internal/lootbox"
)

// ContentsResponse lists a container's items by rarity
type ContentsResponse struct {
	ContainerID int            `json:"containerId"`
	Items       []ItemResponse `json:"items"`
}

// OddsResponse discloses a container's per-tier probabilities
type OddsResponse struct {
	ContainerID int                `json:"containerId"`
	Tiers       []lootbox.TierOdds `json:"tiers"`
}

// VerifyUnlockRequest is an unlock result submitted for verification. The
// body of an unlock response is accepted unchanged; its display item is ignored.
type VerifyUnlockRequest struct {
	domain.UnlockResult
	Item json.RawMessage `json:"item,omitempty"`
}

// VerifyResponse is returned for an accepted unlock result
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// HandleContainerContents lists the items a container can drop.
// hide_specials=true leaves out the special pool.
func HandleContainerContents(svc lootbox.Service, p *Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathInt(r, w, ParamID)
		if !ok {
			return
		}
		hide, ok := GetOptionalQueryBool(r, w, ParamHideSpecials, false)
		if !ok {
			return
		}

		items, err := svc.ListContents(id, hide)
		if err != nil {
			respondServiceError(w, r, OpListContents, err)
			return
		}

		respondJSON(w, http.StatusOK, ContentsResponse{ContainerID: id, Items: p.Items(r, items)})
	}
}

// HandleContainerOdds returns the normalized probability of each present tier
func HandleContainerOdds(svc lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathInt(r, w, ParamID)
		if !ok {
			return
		}

		odds, err := svc.Odds(id)
		if err != nil {
			respondServiceError(w, r, OpContainerOdds, err)
			return
		}

		respondJSON(w, http.StatusOK, OddsResponse{ContainerID: id, Tiers: odds})
	}
}

// HandleUnlock opens a container without touching any inventory
func HandleUnlock(svc lootbox.Service, cat catalog.Lookup, p *Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathInt(r, w, ParamID)
		if !ok {
			return
		}

		result, err := svc.Unlock(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, OpUnlock, err)
			return
		}

		item, err := cat.Get(result.ItemID)
		if err != nil {
			respondServiceError(w, r, OpUnlock, err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgContainerUnlocked,
			LogFieldContainer, id,
			LogFieldItem, result.ItemID)

		respondJSON(w, http.StatusOK, UnlockResponse{UnlockResult: result, Item: p.Item(r, item)})
	}
}

// HandleVerifyUnlock checks that a client-submitted unlock result could have
// come from the container
func HandleVerifyUnlock(svc lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathInt(r, w, ParamID)
		if !ok {
			return
		}

		var req VerifyUnlockRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpVerifyUnlock); err != nil {
			return
		}

		if err := svc.ValidateUnlocked(r.Context(), id, &req.UnlockResult); err != nil {
			respondServiceError(w, r, OpVerifyUnlock, err)
			return
		}

		respondJSON(w, http.StatusOK, VerifyResponse{Valid: true})
	}
}
