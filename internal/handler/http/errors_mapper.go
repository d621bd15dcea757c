package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrIntegrityMismatch:       http.StatusForbidden,

	validators.ErrInvalidLogin:       http.StatusBadRequest,
	validators.ErrInvalidPassword:    http.StatusBadRequest,
	validators.ErrInvalidMobile:      http.StatusBadRequest,
	validators.ErrInvalidPIN:         http.StatusBadRequest,
	validators.ErrEmptyName:          http.StatusBadRequest,
	validators.ErrEmptyDocumentIDs:   http.StatusBadRequest,
	validators.ErrInvalidUpdateOp:    http.StatusBadRequest,
	validators.ErrMissingUpdateField: http.StatusBadRequest,
	validators.ErrEmptyTitle:         http.StatusBadRequest,
	validators.ErrMissingCiphertext:  http.StatusBadRequest,
	validators.ErrMissingSignature:   http.StatusBadRequest,
	validators.ErrInvalidExpiry:      http.StatusBadRequest,

	crypto.ErrNoEncryptionSecret: http.StatusInternalServerError,
	crypto.ErrInvalidIV:          http.StatusInternalServerError,

	adapter.ErrBlobNotFound:      http.StatusNotFound,
	adapter.ErrBucketUnavailable: http.StatusInternalServerError,

	store.ErrLoginAlreadyExists:    http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrDocumentNotFound:      http.StatusNotFound,
	store.ErrAccessObjectNotFound:  http.StatusNotFound,
	store.ErrCardNotFound:          http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
