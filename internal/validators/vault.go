// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"

	"github.com/MKhiriev/go-doc-vault/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	// FieldLogin targets the user login.
	FieldLogin = "login"

	// FieldPassword targets the user password supplied at registration or login.
	FieldPassword = "password"

	// FieldMobile targets the mobile number used by the identity-check step.
	FieldMobile = "mobile"

	// FieldName targets the display name of an access object or user.
	FieldName = "name"

	// FieldPIN targets the 4-digit access object PIN.
	FieldPIN = "pin"

	// FieldDocumentIDs targets the linked document id set of an access object.
	FieldDocumentIDs = "document_ids"

	// FieldTitle targets the card title.
	FieldTitle = "title"

	// FieldCardSignatures targets the ciphertext/signature pairs of a card.
	FieldCardSignatures = "card_signatures"

	// FieldExpiry targets the card expiry field.
	FieldExpiry = "expiry"
)

var (
	pinPattern    = regexp.MustCompile(`^\d{4}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

// VaultValidator implements the Validator interface for the vault's
// boundary payloads: users, access objects, tagged update unions and
// cards. Both value and pointer forms of every model are accepted.
type VaultValidator struct {
}

// NewVaultValidator constructs a new VaultValidator
// and returns it as the Validator interface.
func NewVaultValidator() Validator {
	return &VaultValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Supported types:
//   - models.User / *models.User
//   - models.AccessObject / *models.AccessObject
//   - models.AccessObjectUpdate / *models.AccessObjectUpdate
//   - models.DocumentUpdate / *models.DocumentUpdate
//   - models.Card / *models.Card
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.AccessObject:
		return v.validateAccessObject(ctx, value, fields...)
	case *models.AccessObject:
		return v.validateAccessObject(ctx, *value, fields...)

	case models.AccessObjectUpdate:
		return v.validateAccessObjectUpdate(ctx, value)
	case *models.AccessObjectUpdate:
		return v.validateAccessObjectUpdate(ctx, *value)

	case models.DocumentUpdate:
		return v.validateDocumentUpdate(ctx, value)
	case *models.DocumentUpdate:
		return v.validateDocumentUpdate(ctx, *value)

	case models.Card:
		return v.validateCard(ctx, value, fields...)
	case *models.Card:
		return v.validateCard(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateUser validates registration and login payloads.
//
// Default validated fields (when none specified): Login, Password.
func (v *VaultValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if user.Login == "" {
				return ErrInvalidLogin
			}
		case FieldPassword:
			if len(user.Password) < 6 {
				return ErrInvalidPassword
			}
		case FieldMobile:
			if user.Mobile == "" {
				return ErrInvalidMobile
			}
		case FieldName:
			if user.Name == "" {
				return ErrEmptyName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAccessObject validates access object creation payloads.
//
// Default validated fields (when none specified): Name, PIN, DocumentIDs.
// The PIN must be exactly four ASCII digits; the shape rule lives here at
// the boundary, never inside the gateway service.
func (v *VaultValidator) validateAccessObject(_ context.Context, accessObject models.AccessObject, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPIN, FieldDocumentIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if accessObject.Name == "" {
				return ErrEmptyName
			}
		case FieldPIN:
			if !pinPattern.MatchString(accessObject.PIN) {
				return ErrInvalidPIN
			}
		case FieldDocumentIDs:
			if len(accessObject.DocumentIDs) == 0 {
				return ErrEmptyDocumentIDs
			}
			for _, id := range accessObject.DocumentIDs {
				if id == "" {
					return ErrEmptyDocumentIDs
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAccessObjectUpdate enforces the tagged union of allowed access
// object mutations: exactly the field matching Op must be present.
func (v *VaultValidator) validateAccessObjectUpdate(_ context.Context, update models.AccessObjectUpdate) error {
	switch update.Op {
	case models.AccessObjectOpRename:
		if update.Name == nil || *update.Name == "" {
			return ErrMissingUpdateField
		}
	case models.AccessObjectOpRelink:
		if len(update.DocumentIDs) == 0 {
			return ErrMissingUpdateField
		}
		for _, id := range update.DocumentIDs {
			if id == "" {
				return ErrMissingUpdateField
			}
		}
	default:
		return ErrInvalidUpdateOp
	}

	return nil
}

// validateDocumentUpdate enforces the tagged union of allowed document
// metadata mutations. A nil FolderID under "move_folder" is valid and
// moves the document to the root.
func (v *VaultValidator) validateDocumentUpdate(_ context.Context, update models.DocumentUpdate) error {
	switch update.Op {
	case models.DocumentOpRename:
		if update.Name == nil || *update.Name == "" {
			return ErrMissingUpdateField
		}
	case models.DocumentOpRecategorize:
		if update.Category == nil || *update.Category == "" {
			return ErrMissingUpdateField
		}
	case models.DocumentOpMoveFolder:
		// nil folder id means "move to root"
	default:
		return ErrInvalidUpdateOp
	}

	return nil
}

// validateCard validates card creation payloads.
//
// Default validated fields (when none specified):
// Title, CardSignatures, Expiry.
//
// The signature rule is shape-only: every sensitive ciphertext must carry
// a signature, and a signature without a ciphertext is equally malformed.
// Whether the signature actually matches is decided later by the
// integrity guard.
func (v *VaultValidator) validateCard(_ context.Context, card models.Card, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldCardSignatures, FieldExpiry}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if card.Title == "" {
				return ErrEmptyTitle
			}
		case FieldCardSignatures:
			if card.NumberCiphertext == "" {
				return ErrMissingCiphertext
			}
			if card.NumberHMAC == "" {
				return ErrMissingSignature
			}
			if (card.CVVCiphertext == "") != (card.CVVHMAC == "") {
				return ErrMissingSignature
			}
		case FieldExpiry:
			if card.Expiry != "" && !expiryPattern.MatchString(card.Expiry) {
				return ErrInvalidExpiry
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
