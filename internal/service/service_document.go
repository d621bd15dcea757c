// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// documentService is the concrete implementation of DocumentService.
// Content bytes flow through the stream envelope on both paths; the
// service never buffers a whole document in memory.
type documentService struct {
	documentRepository store.DocumentRepository
	blobStore          adapter.BlobStore
	envelope           crypto.Envelope
	uuidGenerator      *utils.UUIDGenerator
	logger             *logger.Logger
}

// NewDocumentService wires the document pipeline: repository for metadata,
// blob store for ciphertext, envelope for the encrypt/decrypt transform.
func NewDocumentService(documentRepository store.DocumentRepository, blobStore adapter.BlobStore, envelope crypto.Envelope, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		blobStore:          blobStore,
		envelope:           envelope,
		uuidGenerator:      utils.NewUUIDGenerator(),
		logger:             logger,
	}
}

// countingReader counts plaintext bytes as they pass into the envelope,
// so the record carries the true content size without a second pass.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Upload encrypts the content stream and stores it, then creates the
// metadata record. The order is fixed: blob first, record second — a
// record must never reference a blob that was not written.
//
// The passed document carries the client-supplied metadata (name, mime
// type, category, folder); ID, BlobKey, IVHex and Size are assigned here.
func (s *documentService) Upload(ctx context.Context, document models.Document, content io.Reader) (models.Document, error) {
	log := logger.FromContext(ctx)

	if document.UserID <= 0 || document.Name == "" {
		return models.Document{}, ErrInvalidDataProvided
	}

	document.ID = s.uuidGenerator.Generate()
	document.BlobKey = fmt.Sprintf("%d/%s", document.UserID, document.ID)

	counted := &countingReader{r: content}
	cipherStream, ivHex, err := s.envelope.EncryptForUpload(counted)
	if err != nil {
		log.Err(err).Str("func", "*documentService.Upload").Msg("error: envelope rejected upload")
		return models.Document{}, err
	}
	document.IVHex = ivHex

	if err := s.blobStore.Upload(ctx, cipherStream, document.BlobKey, document.MimeType); err != nil {
		log.Err(err).Str("func", "*documentService.Upload").Str("blob_key", document.BlobKey).Msg("error uploading blob")
		return models.Document{}, fmt.Errorf("error uploading blob: %w", err)
	}
	document.Size = counted.n

	saved, err := s.documentRepository.CreateDocument(ctx, document)
	if err != nil {
		log.Err(err).Str("func", "*documentService.Upload").Str("blob_key", document.BlobKey).Msg("error creating document record after upload")

		// best-effort cleanup so the failed insert does not orphan the blob
		if delErr := s.blobStore.Delete(ctx, document.BlobKey); delErr != nil {
			log.Err(delErr).Str("func", "*documentService.Upload").Str("blob_key", document.BlobKey).Msg("error deleting blob after failed record insert")
		}

		return models.Document{}, fmt.Errorf("error creating document record: %w", err)
	}

	return saved, nil
}

// decryptedStream couples the decrypting reader with the underlying blob
// stream closer.
type decryptedStream struct {
	io.Reader
	closer io.Closer
}

func (d *decryptedStream) Close() error {
	return d.closer.Close()
}

// OpenContent opens a decrypted read of the owner's document. A dangling
// blob reference (owner raced a delete) surfaces as the adapter's
// not-found error, never a partial stream.
func (s *documentService) OpenContent(ctx context.Context, userID int64, id string) (models.Document, io.ReadCloser, error) {
	log := logger.FromContext(ctx)

	document, err := s.documentRepository.GetDocument(ctx, userID, id)
	if err != nil {
		return models.Document{}, nil, err
	}

	return s.openDecrypted(ctx, log, document)
}

func (s *documentService) openDecrypted(ctx context.Context, log *logger.Logger, document models.Document) (models.Document, io.ReadCloser, error) {
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

func (s *documentService) List(ctx context.Context, userID int64, filter models.DocumentFilter) ([]models.Document, error) {
	return s.documentRepository.ListDocuments(ctx, userID, filter)
}

func (s *documentService) UpdateMetadata(ctx context.Context, userID int64, id string, update models.DocumentUpdate) error {
	return s.documentRepository.UpdateDocument(ctx, userID, id, update)
}

// Delete removes the blob first, then the record. If the blob delete
// fails the record is left untouched and the error surfaces, so the
// caller can retry the whole operation. A crash between the two steps
// leaves a dangling record, which the read path tolerates.
func (s *documentService) Delete(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	document, err := s.documentRepository.GetDocument(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.blobStore.Delete(ctx, document.BlobKey); err != nil {
		log.Err(err).Str("func", "*documentService.Delete").Str("blob_key", document.BlobKey).Msg("error deleting blob, record untouched")
		return fmt.Errorf("error deleting blob: %w", err)
	}

	if err := s.documentRepository.DeleteDocument(ctx, userID, id); err != nil {
		log.Err(err).Str("func", "*documentService.Delete").Str("document_id", id).Msg("error deleting document record")
		return err
	}

	return nil
}
