// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// bearerTokenTTL bounds how long a verified PIN stays usable as a
// capability. There is no revocation before expiry.
const bearerTokenTTL = time.Hour

// signedURLTTL bounds presigned download URLs handed to anonymous
// visitors through the proxy endpoint.
const signedURLTTL = 5 * time.Minute

// publicContentPathFormat is the bearer-gated endpoint that streams
// decrypted document bytes. Encrypted blobs cannot be served by presigned
// URL (the provider would hand out ciphertext), so the proxy endpoint
// points visitors here instead.
const publicContentPathFormat = "/api/access-objects/public/documents/%s/content"

// accessService is the concrete implementation of AccessService: the
// owner-side CRUD over access objects and the anonymous QR read path.
type accessService struct {
	accessObjectRepository store.AccessObjectRepository
	documentRepository     store.DocumentRepository
	ephemeralTokens        crypto.EphemeralTokens
	urlSigner              adapter.URLSigner
	blobStore              adapter.BlobStore
	envelope               crypto.Envelope
	scanCounter            ScanCounter
	uuidGenerator          *utils.UUIDGenerator
	assetBucket            string
	logger                 *logger.Logger

	// RateLimitHook runs before every PIN comparison when set. It is the
	// surface for a future lockout policy; a non-nil error aborts the
	// verification with ErrForbidden. Nil means no limiting.
	RateLimitHook func(ctx context.Context, accessObjectID string) error
}

// NewAccessService wires the QR gateway. scanCounter may be the
// fire-and-forget worker or any other ScanCounter implementation.
func NewAccessService(
	accessObjectRepository store.AccessObjectRepository,
	documentRepository store.DocumentRepository,
	ephemeralTokens crypto.EphemeralTokens,
	urlSigner adapter.URLSigner,
	blobStore adapter.BlobStore,
	envelope crypto.Envelope,
	scanCounter ScanCounter,
	assetBucket string,
	logger *logger.Logger,
) *accessService {
	return &accessService{
		accessObjectRepository: accessObjectRepository,
		documentRepository:     documentRepository,
		ephemeralTokens:        ephemeralTokens,
		urlSigner:              urlSigner,
		blobStore:              blobStore,
		envelope:               envelope,
		scanCounter:            scanCounter,
		uuidGenerator:          utils.NewUUIDGenerator(),
		assetBucket:            assetBucket,
		logger:                 logger,
	}
}

// Create persists a new access object for its owner. The PIN arrives
// already shape-checked by the boundary validator and is stored as-is.
func (s *accessService) Create(ctx context.Context, accessObject models.AccessObject) (models.AccessObject, error) {
	log := logger.FromContext(ctx)

	if accessObject.UserID <= 0 {
		return models.AccessObject{}, ErrInvalidDataProvided
	}

	accessObject.ID = s.uuidGenerator.Generate()

	saved, err := s.accessObjectRepository.CreateAccessObject(ctx, accessObject)
	if err != nil {
		log.Err(err).Str("func", "*accessService.Create").Msg("error creating access object")
		return models.AccessObject{}, fmt.Errorf("error creating access object: %w", err)
	}

	return saved, nil
}

// Update applies an owner mutation. An ownership mismatch is Forbidden,
// not NotFound: ids are opaque, so the existence signal is acceptable for
// the owner surface.
func (s *accessService) Update(ctx context.Context, userID int64, id string, update models.AccessObjectUpdate) error {
	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}
	return s.accessObjectRepository.UpdateAccessObject(ctx, userID, id, update)
}

func (s *accessService) Delete(ctx context.Context, userID int64, id string) error {
	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}
	return s.accessObjectRepository.DeleteAccessObject(ctx, userID, id)
}

func (s *accessService) checkOwnership(ctx context.Context, userID int64, id string) error {
	accessObject, err := s.accessObjectRepository.GetAccessObject(ctx, id)
	if err != nil {
		return err
	}
	if accessObject.UserID != userID {
		return ErrForbidden
	}
	return nil
}

// VerifyPIN exchanges a correct PIN for a scoped bearer token.
//
// The flow is fixed: fetch (absent ⇒ NotFound from the store), rate-limit
// hook, byte comparison (mismatch ⇒ Forbidden, counter untouched), then
// token mint plus a fire-and-forget counter increment. The increment is
// never awaited; losing it under load is accepted.
func (s *accessService) VerifyPIN(ctx context.Context, id, pin string) (string, error) {
	log := logger.FromContext(ctx)

	accessObject, err := s.accessObjectRepository.GetAccessObject(ctx, id)
	if err != nil {
		return "", err
	}

	if s.RateLimitHook != nil {
		if err := s.RateLimitHook(ctx, id); err != nil {
			log.Warn().Str("func", "*accessService.VerifyPIN").Str("access_object_id", id).Msg("rate limit hook rejected attempt")
			return "", ErrForbidden
		}
	}

	if subtle.ConstantTimeCompare([]byte(accessObject.PIN), []byte(pin)) != 1 {
		log.Warn().Str("func", "*accessService.VerifyPIN").Str("access_object_id", id).Msg("wrong pin")
		return "", ErrForbidden
	}

	token, err := s.ephemeralTokens.Issue(map[string]string{
		"accessObjectId": accessObject.ID,
		"ownerId":        fmt.Sprintf("%d", accessObject.UserID),
		"role":           models.RolePublicQR,
	}, bearerTokenTTL)
	if err != nil {
		log.Err(err).Str("func", "*accessService.VerifyPIN").Msg("error minting bearer token")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	s.scanCounter.Enqueue(accessObject.ID)

	return token, nil
}

// resolveToken verifies the bearer token and refetches its access object.
// Every failure collapses to ErrTokenIsExpiredOrInvalid.
func (s *accessService) resolveToken(ctx context.Context, bearerToken string) (models.AccessObject, error) {
	payload := s.ephemeralTokens.Verify(bearerToken)
	if payload == nil || payload["role"] != models.RolePublicQR || payload["accessObjectId"] == "" {
		return models.AccessObject{}, ErrTokenIsExpiredOrInvalid
	}

	accessObject, err := s.accessObjectRepository.GetAccessObject(ctx, payload["accessObjectId"])
	if err != nil {
		if errors.Is(err, store.ErrAccessObjectNotFound) {
			// the object was deleted after the token was minted
			return models.AccessObject{}, ErrTokenIsExpiredOrInvalid
		}
		return models.AccessObject{}, err
	}

	return accessObject, nil
}

// ListDocuments resolves the linked document ids in their persisted
// order. Ids that no longer resolve are dropped silently: the owner may
// have deleted a document after linking it.
func (s *accessService) ListDocuments(ctx context.Context, bearerToken string) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	accessObject, err := s.resolveToken(ctx, bearerToken)
	if err != nil {
		return nil, err
	}

	documents := make([]models.Document, 0, len(accessObject.DocumentIDs))
	for _, id := range accessObject.DocumentIDs {
		document, err := s.documentRepository.GetDocumentByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrDocumentNotFound) {
				log.Debug().Str("document_id", id).Msg("linked document no longer resolves, dropped")
				continue
			}
			return nil, err
		}
		documents = append(documents, document)
	}

	return documents, nil
}

// fetchMember verifies the token and confirms documentID membership in
// the access object's linked set. The membership check runs on every
// call, never cached.
func (s *accessService) fetchMember(ctx context.Context, bearerToken, documentID string) (models.Document, error) {
	accessObject, err := s.resolveToken(ctx, bearerToken)
	if err != nil {
		return models.Document{}, err
	}

	if !accessObject.IsLinked(documentID) {
		return models.Document{}, ErrForbidden
	}

	return s.documentRepository.GetDocumentByID(ctx, documentID)
}

// FetchDocument returns the document metadata and a time-boxed download
// URL. Unencrypted asset blobs get a provider presigned URL; encrypted
// documents point at the bearer-gated content endpoint, because a
// presigned URL onto ciphertext would be useless to the visitor.
func (s *accessService) FetchDocument(ctx context.Context, bearerToken, documentID string) (models.Document, string, error) {
	log := logger.FromContext(ctx)

	document, err := s.fetchMember(ctx, bearerToken, documentID)
	if err != nil {
		return models.Document{}, "", err
	}

	if document.IVHex == "" {
		url, err := s.urlSigner.IssueGetURL(ctx, s.assetBucket, document.BlobKey, signedURLTTL)
		if err != nil {
			log.Err(err).Str("func", "*accessService.FetchDocument").Str("blob_key", document.BlobKey).Msg("error presigning download url")
			return models.Document{}, "", fmt.Errorf("error presigning download url: %w", err)
		}
		return document, url, nil
	}

	return document, fmt.Sprintf(publicContentPathFormat, document.ID), nil
}

// OpenPublicContent streams decrypted bytes of a linked document to an
// anonymous visitor holding a valid bearer token.
func (s *accessService) OpenPublicContent(ctx context.Context, bearerToken, documentID string) (models.Document, io.ReadCloser, error) {
	log := logger.FromContext(ctx)

	document, err := s.fetchMember(ctx, bearerToken, documentID)
	if err != nil {
		return models.Document{}, nil, err
	}

	blobStream, err := s.blobStore.DownloadStream(ctx, document.BlobKey)
	if err != nil {
		log.Err(err).Str("blob_key", document.BlobKey).Msg("error opening blob stream")
		return models.Document{}, nil, err
	}

	plainStream, err := s.envelope.DecryptForDownload(blobStream, document.IVHex)
	if err != nil {
		_ = blobStream.Close()
		log.Err(err).Str("blob_key", document.BlobKey).Msg("error opening decrypt stream")
		return models.Document{}, nil, err
	}

	return document, &decryptedStream{Reader: plainStream, closer: blobStream}, nil
}
