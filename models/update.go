package models

// Update payloads are explicit tagged unions of allowed operations,
// validated at the HTTP boundary before they reach any service.

// DocumentUpdateOp enumerates the allowed document metadata operations.
type DocumentUpdateOp string

const (
	DocumentOpRename       DocumentUpdateOp = "rename"
	DocumentOpRecategorize DocumentUpdateOp = "recategorize"
	DocumentOpMoveFolder   DocumentUpdateOp = "move_folder"
)

// DocumentUpdate is one metadata operation on a document. Exactly the
// field matching Op must be set; the document content itself is immutable.
type DocumentUpdate struct {
	Op DocumentUpdateOp `json:"op"`

	// Name is required when Op is "rename".
	Name *string `json:"name,omitempty"`

	// Category is required when Op is "recategorize".
	Category *string `json:"category,omitempty"`

	// FolderID is consulted when Op is "move_folder"; nil moves the
	// document to the root.
	FolderID *string `json:"folder_id,omitempty"`
}

// AccessObjectUpdateOp enumerates the allowed access-object operations.
// The PIN is set once at creation and is not rotated by updates.
type AccessObjectUpdateOp string

const (
	AccessObjectOpRename AccessObjectUpdateOp = "rename"
	AccessObjectOpRelink AccessObjectUpdateOp = "relink"
)

// AccessObjectUpdate is one mutation of an access object by its owner.
type AccessObjectUpdate struct {
	Op AccessObjectUpdateOp `json:"op"`

	// Name is required when Op is "rename".
	Name *string `json:"name,omitempty"`

	// DocumentIDs replaces the linked set when Op is "relink".
	DocumentIDs []string `json:"document_ids,omitempty"`
}
