// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

type createAccessObjectRequest struct {
	Name        string   `json:"name"`
	PIN         string   `json:"pin"`
	DocumentIDs []string `json:"document_ids"`
}

type verifyPINRequest struct {
	AccessObjectID string `json:"access_object_id"`
	PIN            string `json:"pin"`
}

func (h *Handler) createAccessObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.createAccessObject").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req createAccessObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createAccessObject").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	accessObject := models.AccessObject{
		UserID:      userID,
		Name:        req.Name,
		PIN:         req.PIN,
		DocumentIDs: req.DocumentIDs,
	}

	if err := h.validator.Validate(ctx, accessObject); err != nil {
		log.Err(err).Str("func", "*Handler.createAccessObject").Msg("invalid access object")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	created, err := h.services.AccessService.Create(ctx, accessObject)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createAccessObject").Msg("error creating access object")
		http.Error(w, "error creating access object", statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, created, http.StatusCreated); err != nil {
		log.Err(err).Str("func", "*Handler.createAccessObject").Msg("error writing access object response")
	}
}

func (h *Handler) updateAccessObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.updateAccessObject").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.AccessObjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateAccessObject").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, update); err != nil {
		log.Err(err).Str("func", "*Handler.updateAccessObject").Msg("invalid access object update")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	accessObjectID := chi.URLParam(r, "id")
	if err := h.services.AccessService.Update(ctx, userID, accessObjectID, update); err != nil {
		log.Err(err).Str("func", "*Handler.updateAccessObject").Msg("error updating access object")
		http.Error(w, "error updating access object", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteAccessObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteAccessObject").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accessObjectID := chi.URLParam(r, "id")
	if err := h.services.AccessService.Delete(ctx, userID, accessObjectID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteAccessObject").Msg("error deleting access object")
		http.Error(w, "error deleting access object", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// verifyPIN is the anonymous entry point of the QR flow. A wrong PIN and a
// missing access object are both reported as 403 so the endpoint does not
// leak which ids exist.
func (h *Handler) verifyPIN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req verifyPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.verifyPIN").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	bearerToken, err := h.services.AccessService.VerifyPIN(ctx, req.AccessObjectID, req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden), errors.Is(err, store.ErrAccessObjectNotFound):
			log.Err(err).Str("func", "*Handler.verifyPIN").Msg("pin verification refused")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		default:
			log.Err(err).Str("func", "*Handler.verifyPIN").Msg("unexpected error during pin verification")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	if _, err := utils.WriteJSON(w, models.BearerTokenResponse{BearerToken: bearerToken}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.verifyPIN").Msg("error writing bearer token response")
	}
}

func (h *Handler) publicDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	bearerToken, err := bearerTokenFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.publicDocuments").Msg("error getting bearer token")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	documents, err := h.services.AccessService.ListDocuments(ctx, bearerToken)
	if err != nil {
		log.Err(err).Str("func", "*Handler.publicDocuments").Msg("error listing public documents")
		http.Error(w, "error listing documents", statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.DocumentsResponse{Documents: documents}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.publicDocuments").Msg("error writing documents response")
	}
}

func (h *Handler) publicDocumentProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	bearerToken, err := bearerTokenFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.publicDocumentProxy").Msg("error getting bearer token")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	documentID := chi.URLParam(r, "id")

	_, downloadURL, err := h.services.AccessService.FetchDocument(ctx, bearerToken, documentID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.publicDocumentProxy").Msg("error fetching document")
		http.Error(w, "error fetching document", statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.DownloadURLResponse{DownloadURL: downloadURL}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.publicDocumentProxy").Msg("error writing download url response")
	}
}

func (h *Handler) publicDocumentContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	bearerToken, err := bearerTokenFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.publicDocumentContent").Msg("error getting bearer token")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	documentID := chi.URLParam(r, "id")

	document, content, err := h.services.AccessService.OpenPublicContent(ctx, bearerToken, documentID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.publicDocumentContent").Msg("error opening public document content")
		http.Error(w, "error opening document content", statusFromError(err))
		return
	}
	defer content.Close()

	writeContentStream(w, r, document, content, log)
}
