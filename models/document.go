package models

import "time"

// Document represents a single stored vault document.
// The binary content lives encrypted in the remote blob store; this record
// holds only metadata plus the material needed to locate and decrypt it.
//
// Documents are immutable once stored: the blob and its IV never change.
// Only display metadata (name, category, folder) may change via a separate
// update path.
type Document struct {
	// ID is the opaque identifier of the document (UUID).
	ID string `json:"id"`

	// UserID is the owner of the document.
	UserID int64 `json:"-"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// MimeType is the declared media type of the content.
	MimeType string `json:"mime_type"`

	// Size is the plaintext byte size recorded at upload time.
	Size int64 `json:"size"`

	// BlobKey is the opaque reference of the encrypted blob in the remote
	// store. Never exposed to clients.
	BlobKey string `json:"-"`

	// IVHex is the hex-encoded initialization vector used to encrypt the
	// blob. Invariant: a record with a non-empty BlobKey always has a
	// non-empty IVHex — decryption is impossible otherwise.
	IVHex string `json:"-"`

	// Category is a free-form grouping label.
	Category string `json:"category"`

	// FolderID is an optional parent-folder reference.
	FolderID *string `json:"folder_id,omitempty"`

	// CreatedAt is the timestamp of the successful upload.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Document model.
func (d *Document) TableName() string {
	return "documents"
}

// DocumentFilter narrows owner document listings.
type DocumentFilter struct {
	Category string
	FolderID *string
}
