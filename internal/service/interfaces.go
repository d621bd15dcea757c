package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-doc-vault/models"
)

type AuthService interface {
	// CheckIdentity issues a short-lived signup token binding the given
	// mobile number to the follow-up registration call. Stateless.
	CheckIdentity(ctx context.Context, mobile string) (string, error)

	// RegisterUser verifies the signup token, extracts the mobile bound
	// to it and creates the account.
	RegisterUser(ctx context.Context, signupToken string, user models.User) (models.User, error)

	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DocumentService runs the encrypted document pipeline for authenticated
// owners: stream in through the envelope to the blob store, stream out
// through the envelope to the client.
type DocumentService interface {
	Upload(ctx context.Context, document models.Document, content io.Reader) (models.Document, error)

	// OpenContent returns the document record and a decrypted content
	// stream. The caller owns the returned ReadCloser.
	OpenContent(ctx context.Context, userID int64, id string) (models.Document, io.ReadCloser, error)

	List(ctx context.Context, userID int64, filter models.DocumentFilter) ([]models.Document, error)
	UpdateMetadata(ctx context.Context, userID int64, id string, update models.DocumentUpdate) error

	// Delete removes the remote blob first, then the record. A failure on
	// the blob step surfaces to the caller before the record is touched.
	Delete(ctx context.Context, userID int64, id string) error
}

// AccessService is the QR gateway: owner-side CRUD over access objects
// plus the anonymous PIN-verification and scoped-token read path.
type AccessService interface {
	Create(ctx context.Context, accessObject models.AccessObject) (models.AccessObject, error)
	Update(ctx context.Context, userID int64, id string, update models.AccessObjectUpdate) error
	Delete(ctx context.Context, userID int64, id string) error

	// VerifyPIN exchanges a correct PIN for a scoped bearer token. The
	// scan counter increment is dispatched fire-and-forget.
	VerifyPIN(ctx context.Context, id, pin string) (string, error)

	// ListDocuments resolves the linked documents of the token's access
	// object, silently dropping ids that no longer resolve.
	ListDocuments(ctx context.Context, bearerToken string) ([]models.Document, error)

	// FetchDocument returns the document metadata plus a time-boxed
	// download URL. Membership in the access object is checked on every
	// call.
	FetchDocument(ctx context.Context, bearerToken, documentID string) (models.Document, string, error)

	// OpenPublicContent streams decrypted document bytes for the token's
	// access object, same membership rule as FetchDocument.
	OpenPublicContent(ctx context.Context, bearerToken, documentID string) (models.Document, io.ReadCloser, error)
}

type CardService interface {
	// Create persists a card after the integrity gate: every sensitive
	// ciphertext must carry a signature that verifies.
	Create(ctx context.Context, card models.Card) (models.Card, error)

	// List returns the owner's cards with the masked PAN recovered from
	// the legacy static-key ciphertext.
	List(ctx context.Context, userID int64) ([]models.Card, error)

	Delete(ctx context.Context, userID int64, id string) error
}

// ScanCounter is the fire-and-forget increment surface implemented by
// workers.ScanCounterWorker.
type ScanCounter interface {
	Enqueue(id string)
}
