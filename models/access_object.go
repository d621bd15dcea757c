package models

import "time"

// RolePublicQR is the role claim carried by public QR bearer tokens.
const RolePublicQR = "public_qr"

// AccessObject is the PIN-protected, document-linking record underlying a
// shareable QR code. It is owned exclusively by its creator; an anonymous
// visitor who presents the correct PIN receives a scoped bearer token
// granting read access to the linked documents only.
type AccessObject struct {
	// ID is the opaque identifier of the access object (UUID).
	ID string `json:"id"`

	// UserID is the owner; all mutations are restricted to this user.
	UserID int64 `json:"-"`

	// Name is the display name shown to the owner and to visitors.
	Name string `json:"name"`

	// PIN is the 4-digit access code. Stored in clear in the metadata
	// store — a deliberate carry-over from the original system.
	PIN string `json:"-"`

	// DocumentIDs is the ordered set of linked document identifiers.
	// Resolved lazily against the document store; ids whose documents have
	// been deleted are silently dropped on listing.
	DocumentIDs []string `json:"document_ids"`

	// ScanCount counts successful PIN verifications. Incremented
	// best-effort; lost increments under concurrency are accepted.
	ScanCount int64 `json:"scan_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the AccessObject model.
func (a *AccessObject) TableName() string {
	return "access_objects"
}

// IsLinked reports whether docID is a member of the linked document set.
func (a *AccessObject) IsLinked(docID string) bool {
	for _, id := range a.DocumentIDs {
		if id == docID {
			return true
		}
	}
	return false
}
