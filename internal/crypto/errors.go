package crypto

import "errors"

var (
	// ErrNoEncryptionSecret is returned when a document encrypt or decrypt
	// call is attempted while the encryption secret is not configured.
	// The pipeline fails closed: no bytes are read or written.
	ErrNoEncryptionSecret = errors.New("encryption secret is not configured")

	// ErrInvalidIV is returned when a stored initialization vector cannot
	// be decoded or has the wrong length for the cipher block size.
	ErrInvalidIV = errors.New("invalid initialization vector")

	// ErrInvalidLegacyBlob is returned when a legacy card-field ciphertext
	// blob is malformed (bad base64, missing salt header, truncated
	// ciphertext, or broken padding).
	ErrInvalidLegacyBlob = errors.New("invalid legacy ciphertext blob")
)
