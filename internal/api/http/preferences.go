package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/service"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/pkg/api"
	"github.com/cardfolio/cardfolio/pkg/httpx"
)

type PreferencesHandler struct {
	PreferencesService *service.PreferencesService
}

// HandleGet returns the caller's settings. A 404 here means the user has not
// completed onboarding yet.
func (h *PreferencesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.PreferencesService.GetPreferences(r.Context(), UserID(r.Context()))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeInternal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPreferencesResponse(prefs))
}

// HandleUpdate overwrites the caller's settings.
func (h *PreferencesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req api.PreferencesPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	prefs, err := h.PreferencesService.UpdatePreferences(
		r.Context(),
		UserID(r.Context()),
		req.Notifications,
		req.DarkMode,
		domain.Currency(req.Currency),
	)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeNotFound(w)
		case errors.Is(err, service.ErrInvalidPreferences):
			writeError(w, http.StatusBadRequest, "invalid_request", "Preferences are invalid")
		default:
			writeInternal(w)
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPreferencesResponse(prefs))
}
