package handler

import (
	"net/http"

	"github.com/osse101/casevault/internal/catalog"
)

// HandleGetCatalogItem returns one catalog item localized by Accept-Language
func HandleGetCatalogItem(cat catalog.Lookup, p *Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathInt(r, w, ParamID)
		if !ok {
			return
		}

		item, err := cat.Get(id)
		if err != nil {
			respondServiceError(w, r, OpGetItem, err)
			return
		}

		respondJSON(w, http.StatusOK, p.Item(r, item))
	}
}
