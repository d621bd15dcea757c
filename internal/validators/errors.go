package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidLogin       = errors.New("invalid login")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidMobile      = errors.New("invalid mobile")
	ErrInvalidPIN         = errors.New("pin must be exactly 4 digits")
	ErrEmptyName          = errors.New("name is required")
	ErrEmptyDocumentIDs   = errors.New("document ids list cannot be empty")
	ErrInvalidUpdateOp    = errors.New("invalid update operation")
	ErrMissingUpdateField = errors.New("update operation is missing its field")
	ErrEmptyTitle         = errors.New("title is required")
	ErrMissingCiphertext  = errors.New("number ciphertext is required")
	ErrMissingSignature   = errors.New("sensitive field is missing its signature")
	ErrInvalidExpiry      = errors.New("invalid card expiry")
)
