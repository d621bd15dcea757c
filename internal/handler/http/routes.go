package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/check", h.checkIdentity)
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)

		r.Post("/api/access-objects/public/verify", h.verifyPIN)
	})

	// anonymous QR routes, gated per-request by the scoped bearer token
	router.Group(func(r chi.Router) {
		r.Get("/api/access-objects/public/documents", h.publicDocuments)
		r.Get("/api/access-objects/public/documents/{id}/proxy", h.publicDocumentProxy)
		r.Get("/api/access-objects/public/documents/{id}/content", h.publicDocumentContent)
	})

	// session routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/documents", h.uploadDocument)
		r.Get("/api/documents", h.listDocuments)
		r.Get("/api/documents/{id}/content", h.documentContent)
		r.Patch("/api/documents/{id}", h.updateDocument)
		r.Delete("/api/documents/{id}", h.deleteDocument)

		r.Post("/api/access-objects", h.createAccessObject)
		r.Patch("/api/access-objects/{id}", h.updateAccessObject)
		r.Delete("/api/access-objects/{id}", h.deleteAccessObject)

		r.Post("/api/cards", h.createCard)
		r.Get("/api/cards", h.listCards)
		r.Delete("/api/cards/{id}", h.deleteCard)
	})

	return router
}
