package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ETAnderson/storesync/internal/state"
)

// SyncRecordHandler exposes the stored item → external product association.
// The external id is read-only to end users; this is a diagnostics surface.
type SyncRecordHandler struct {
	Records state.Store
}

func (h SyncRecordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "missing_item_code",
			"message": "item code path segment is required",
		})
		return
	}

	externalID, ok, err := h.Records.GetExternalID(r.Context(), code)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "lookup_failed",
			"message": err.Error(),
		})
		return
	}

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "never_synced",
			"message": "no external product id stored for this item",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"item_code":           code,
		"external_product_id": externalID,
	})
}
