package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/service"
	"github.com/cardfolio/cardfolio/pkg/api"
	"github.com/cardfolio/cardfolio/pkg/httpx"
)

type OnboardingHandler struct {
	OnboardingService *service.OnboardingService
}

// ServeHTTP completes the onboarding wizard in one request. Profile name,
// preferences, and the optional first card land atomically; a failure at any
// step leaves the account exactly as it was.
func (h *OnboardingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req api.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	data := domain.OnboardingData{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Preferences: domain.PreferencesData{
			Notifications: req.Preferences.Notifications,
			DarkMode:      req.Preferences.DarkMode,
			Currency:      domain.Currency(req.Preferences.Currency),
		},
	}
	if req.Card != nil {
		data.Card = &domain.CardData{
			Name:  strings.TrimSpace(req.Card.Name),
			Type:  domain.CardType(req.Card.Type),
			Last4: req.Card.Last4,
		}
	}

	res, err := h.OnboardingService.Onboard(r.Context(), UserID(r.Context()), data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyOnboarded):
			writeError(w, http.StatusConflict, "already_onboarded",
				"Onboarding has already been completed")
		case errors.Is(err, service.ErrInvalidOnboarding):
			writeError(w, http.StatusBadRequest, "invalid_request",
				"Onboarding data is invalid")
		default:
			writeInternal(w)
		}
		return
	}

	resp := api.OnboardingResponse{
		User:        toUserResponse(res.User),
		Preferences: toPreferencesResponse(res.Preferences),
	}
	if res.Card != nil {
		card := toCardResponse(*res.Card)
		resp.Card = &card
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
