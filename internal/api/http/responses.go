package http

import (
	"net/http"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/pkg/api"
	"github.com/cardfolio/cardfolio/pkg/httpx"
)

func toUserResponse(u domain.User) api.UserResponse {
	return api.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		HasOnboarded: u.HasOnboarded,
		CreatedAt:    u.CreatedAt,
	}
}

func toPreferencesResponse(p domain.Preferences) api.PreferencesResponse {
	return api.PreferencesResponse{
		Notifications: p.Notifications,
		DarkMode:      p.DarkMode,
		Currency:      string(p.Currency),
		UpdatedAt:     p.UpdatedAt,
	}
}

func toCardResponse(c domain.Card) api.CardResponse {
	return api.CardResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		Last4:     c.Last4,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, api.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

func writeValidationError(w http.ResponseWriter, details map[string]string) {
	httpx.WriteJSON(w, http.StatusBadRequest, api.ValidationErrorResponse{
		Code:    "validation_error",
		Message: "validation failed for some fields",
		Details: details,
	})
}

func writeInvalidJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
}

func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not_found", "Resource not found")
}

func writeInternal(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
}
