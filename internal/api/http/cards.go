package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/service"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/pkg/api"
	"github.com/cardfolio/cardfolio/pkg/httpx"
)

type CardsHandler struct {
	CardService *service.CardService
}

// HandleList returns the caller's cards, newest first.
func (h *CardsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cards, err := h.CardService.ListCards(r.Context(), UserID(r.Context()))
	if err != nil {
		writeInternal(w)
		return
	}

	resp := api.CardListResponse{Cards: make([]api.CardResponse, 0, len(cards))}
	for _, c := range cards {
		resp.Cards = append(resp.Cards, toCardResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate saves a new card.
func (h *CardsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req api.CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	card, err := h.CardService.CreateCard(
		r.Context(),
		UserID(r.Context()),
		strings.TrimSpace(req.Name),
		domain.CardType(req.Type),
		req.Last4,
	)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCard) {
			writeError(w, http.StatusBadRequest, "invalid_request", "Card data is invalid")
			return
		}
		writeInternal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCardResponse(card))
}

// HandleGet fetches one of the caller's cards.
func (h *CardsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	card, err := h.CardService.GetCard(r.Context(), UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeInternal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCardResponse(card))
}

// HandleUpdate replaces a card's mutable fields.
func (h *CardsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req api.CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	card, err := h.CardService.UpdateCard(
		r.Context(),
		UserID(r.Context()),
		r.PathValue("id"),
		strings.TrimSpace(req.Name),
		domain.CardType(req.Type),
		req.Last4,
	)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeNotFound(w)
		case errors.Is(err, service.ErrInvalidCard):
			writeError(w, http.StatusBadRequest, "invalid_request", "Card data is invalid")
		default:
			writeInternal(w)
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCardResponse(card))
}

// HandleDelete removes a card.
func (h *CardsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.CardService.DeleteCard(r.Context(), UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeInternal(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
