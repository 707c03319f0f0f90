package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ETAnderson/storesync/internal/api/sitectx"
	"github.com/ETAnderson/storesync/internal/domain"
	"github.com/ETAnderson/storesync/internal/hooks"
	"github.com/ETAnderson/storesync/internal/syncer"
)

// ItemHookHandler receives host lifecycle events (item created / updated)
// and runs one sync cycle per event. Create and update hooks share the same
// cycle: routing is decided by stored-id presence, not by which hook fired.
//
// Sync failures never surface as HTTP errors here; the host's write already
// succeeded and must not be blocked or rolled back.
type ItemHookHandler struct {
	Orchestrator *syncer.Orchestrator
	Logger       *log.Logger
}

type HookResponse struct {
	EventID  string                  `json:"event_id"`
	Warnings hooks.UnknownKeyWarning `json:"warnings,omitempty"`
	Outcome  domain.SyncOutcome      `json:"outcome"`
}

func (h ItemHookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	eventID := "evt_" + uuid.NewString()

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "read_failed",
			"message": err.Error(),
		})
		return
	}

	parsed, err := hooks.ParseItemAllowUnknown(bodyBytes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_json",
			"message": err.Error(),
		})
		return
	}

	if strings.TrimSpace(parsed.Item.Code) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "missing_item_code",
			"message": "item.item_code is required",
		})
		return
	}

	siteKey := sitectx.SiteKey(r.Context())
	outcome := h.Orchestrator.SyncItemForSite(r.Context(), parsed.Item, siteKey)

	if outcome.Status == domain.SyncStatusFailed && h.Logger != nil {
		h.Logger.Printf("sync failed for %s (%s): %s", outcome.ItemCode, outcome.ErrorKind, outcome.Message)
	}

	writeJSON(w, http.StatusOK, HookResponse{
		EventID:  eventID,
		Warnings: parsed.Warnings,
		Outcome:  outcome,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
