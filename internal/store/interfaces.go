package store

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// DocumentRepository persists document metadata records. Content bytes
// never pass through this layer; they live in the remote blob store.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, document models.Document) (models.Document, error)

	// GetDocument fetches an owner-scoped document.
	GetDocument(ctx context.Context, userID int64, id string) (models.Document, error)

	// GetDocumentByID fetches a document by id regardless of owner. Used
	// by the public access gateway, which authorizes by access-object
	// membership instead of session identity.
	GetDocumentByID(ctx context.Context, id string) (models.Document, error)

	ListDocuments(ctx context.Context, userID int64, filter models.DocumentFilter) ([]models.Document, error)
	UpdateDocument(ctx context.Context, userID int64, id string, update models.DocumentUpdate) error
	DeleteDocument(ctx context.Context, userID int64, id string) error
}

// AccessObjectRepository persists the PIN-protected document-linking
// records behind shareable QR codes.
type AccessObjectRepository interface {
	CreateAccessObject(ctx context.Context, accessObject models.AccessObject) (models.AccessObject, error)
	GetAccessObject(ctx context.Context, id string) (models.AccessObject, error)
	UpdateAccessObject(ctx context.Context, userID int64, id string, update models.AccessObjectUpdate) error
	DeleteAccessObject(ctx context.Context, userID int64, id string) error

	// IncrementScanCount bumps the scan counter by one. Called from the
	// fire-and-forget worker; callers never await or act on the result.
	IncrementScanCount(ctx context.Context, id string) error
}

type CardRepository interface {
	CreateCard(ctx context.Context, card models.Card) (models.Card, error)
	ListCards(ctx context.Context, userID int64) ([]models.Card, error)
	DeleteCard(ctx context.Context, userID int64, id string) error
}
