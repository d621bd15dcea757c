package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

type cardsResponse struct {
	Cards []models.Card `json:"cards"`
}

func (h *Handler) createCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.createCard").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var card models.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		log.Err(err).Str("func", "*Handler.createCard").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	card.UserID = userID

	if err := h.validator.Validate(ctx, card); err != nil {
		log.Err(err).Str("func", "*Handler.createCard").Msg("invalid card")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	created, err := h.services.CardService.Create(ctx, card)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createCard").Msg("error creating card")
		http.Error(w, "error creating card", statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, created, http.StatusCreated); err != nil {
		log.Err(err).Str("func", "*Handler.createCard").Msg("error writing card response")
	}
}

func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.listCards").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	cards, err := h.services.CardService.List(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listCards").Msg("error listing cards")
		http.Error(w, "error listing cards", statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, cardsResponse{Cards: cards}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.listCards").Msg("error writing cards response")
	}
}

func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteCard").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	cardID := chi.URLParam(r, "id")
	if err := h.services.CardService.Delete(ctx, userID, cardID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteCard").Msg("error deleting card")
		http.Error(w, "error deleting card", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
