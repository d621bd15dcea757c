// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// uploadDocument accepts a multipart request. Metadata fields (name,
// category, folder_id) must precede the "file" part so the content can be
// streamed straight into the encryption pipeline without buffering the
// whole document in memory.
func (h *Handler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.uploadDocument").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	reader, err := r.MultipartReader()
	if err != nil {
		log.Err(err).Str("func", "*Handler.uploadDocument").Msg("request is not multipart")
		http.Error(w, "multipart request expected", http.StatusBadRequest)
		return
	}

	document := models.Document{UserID: userID}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			log.Error().Str("func", "*Handler.uploadDocument").Msg("multipart request has no file part")
			http.Error(w, "missing file part", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Err(err).Str("func", "*Handler.uploadDocument").Msg("error reading multipart body")
			http.Error(w, "error reading multipart body", http.StatusBadRequest)
			return
		}

		switch part.FormName() {
		case "name":
			document.Name = readFormValue(part)
		case "category":
			document.Category = readFormValue(part)
		case "folder_id":
			if v := readFormValue(part); v != "" {
				document.FolderID = &v
			}
		case "file":
			if document.Name == "" {
				document.Name = part.FileName()
			}
			document.MimeType = part.Header.Get("Content-Type")
			if document.MimeType == "" {
				document.MimeType = "application/octet-stream"
			}

			uploaded, err := h.services.DocumentService.Upload(ctx, document, part)
			if err != nil {
				log.Err(err).Str("func", "*Handler.uploadDocument").Msg("error uploading document")
				http.Error(w, "error uploading document", statusFromError(err))
				return
			}

			if _, err := utils.WriteJSON(w, uploaded, http.StatusCreated); err != nil {
				log.Err(err).Str("func", "*Handler.uploadDocument").Msg("error writing document response")
			}
			return
		default:
			_ = part.Close()
		}
	}
}

func readFormValue(part io.ReadCloser) string {
	defer part.Close()
	// metadata fields are small, a hard cap keeps hostile parts bounded
	b, err := io.ReadAll(io.LimitReader(part, 4096))
	if err != nil {
		return ""
	}
	return string(b)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.listDocuments").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	filter := models.DocumentFilter{
		Category: r.URL.Query().Get("category"),
	}
	if r.URL.Query().Has("folder_id") {
		folderID := r.URL.Query().Get("folder_id")
		filter.FolderID = &folderID
	}

	documents, err := h.services.DocumentService.List(ctx, userID, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listDocuments").Msg("error listing documents")
		http.Error(w, "error listing documents", statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.DocumentsResponse{Documents: documents}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.listDocuments").Msg("error writing documents response")
	}
}

func (h *Handler) documentContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.documentContent").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	documentID := chi.URLParam(r, "id")

	document, content, err := h.services.DocumentService.OpenContent(ctx, userID, documentID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.documentContent").Msg("error opening document content")
		http.Error(w, "error opening document content", statusFromError(err))
		return
	}
	defer content.Close()

	writeContentStream(w, r, document, content, log)
}

// writeContentStream copies decrypted document bytes to the client in
// chunks. The disposition defaults to inline; ?download=1 forces a save-as.
func writeContentStream(w http.ResponseWriter, r *http.Request, document models.Document, content io.Reader, log *logger.Logger) {
	disposition := "inline"
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment"
	}

	mimeType := document.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": document.Name}))
	if document.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", document.Size))
	}

	if _, err := io.Copy(w, content); err != nil {
		// headers are already sent, nothing left to do but log
		log.Err(err).Str("func", "writeContentStream").Msg("error streaming document content")
	}
}

func (h *Handler) updateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.updateDocument").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.DocumentUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateDocument").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, update); err != nil {
		log.Err(err).Str("func", "*Handler.updateDocument").Msg("invalid document update")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	documentID := chi.URLParam(r, "id")
	if err := h.services.DocumentService.UpdateMetadata(ctx, userID, documentID, update); err != nil {
		log.Err(err).Str("func", "*Handler.updateDocument").Msg("error updating document")
		http.Error(w, "error updating document", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteDocument").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	documentID := chi.URLParam(r, "id")
	if err := h.services.DocumentService.Delete(ctx, userID, documentID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteDocument").Msg("error deleting document")
		http.Error(w, "error deleting document", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
