package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrForbidden covers ownership mismatches, wrong PINs and
	// out-of-scope document fetches. One sentinel for all of them keeps
	// the public surface from leaking which check failed.
	ErrForbidden = errors.New("forbidden")

	// ErrIntegrityMismatch is returned when a signature over a sensitive
	// ciphertext field does not verify. The request is rejected wholesale,
	// nothing is persisted.
	ErrIntegrityMismatch = errors.New("integrity signature mismatch")
)
