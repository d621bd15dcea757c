// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-doc-vault/models"
)

// ─────────────────────────────────────────────
// Mock: store repositories
// ─────────────────────────────────────────────

type mockDocumentRepository struct {
	createFn  func(ctx context.Context, document models.Document) (models.Document, error)
	getFn     func(ctx context.Context, userID int64, id string) (models.Document, error)
	getByIDFn func(ctx context.Context, id string) (models.Document, error)
	listFn    func(ctx context.Context, userID int64, filter models.DocumentFilter) ([]models.Document, error)
	updateFn  func(ctx context.Context, userID int64, id string, update models.DocumentUpdate) error
	deleteFn  func(ctx context.Context, userID int64, id string) error
}

func (m *mockDocumentRepository) CreateDocument(ctx context.Context, document models.Document) (models.Document, error) {
	if m.createFn != nil {
		return m.createFn(ctx, document)
	}
	return document, nil
}

func (m *mockDocumentRepository) GetDocument(ctx context.Context, userID int64, id string) (models.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return models.Document{}, nil
}

func (m *mockDocumentRepository) GetDocumentByID(ctx context.Context, id string) (models.Document, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return models.Document{}, nil
}

func (m *mockDocumentRepository) ListDocuments(ctx context.Context, userID int64, filter models.DocumentFilter) ([]models.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockDocumentRepository) UpdateDocument(ctx context.Context, userID int64, id string, update models.DocumentUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, update)
	}
	return nil
}

func (m *mockDocumentRepository) DeleteDocument(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

type mockAccessObjectRepository struct {
	createFn    func(ctx context.Context, accessObject models.AccessObject) (models.AccessObject, error)
	getFn       func(ctx context.Context, id string) (models.AccessObject, error)
	updateFn    func(ctx context.Context, userID int64, id string, update models.AccessObjectUpdate) error
	deleteFn    func(ctx context.Context, userID int64, id string) error
	incrementFn func(ctx context.Context, id string) error
}

func (m *mockAccessObjectRepository) CreateAccessObject(ctx context.Context, accessObject models.AccessObject) (models.AccessObject, error) {
	if m.createFn != nil {
		return m.createFn(ctx, accessObject)
	}
	return accessObject, nil
}

func (m *mockAccessObjectRepository) GetAccessObject(ctx context.Context, id string) (models.AccessObject, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.AccessObject{}, nil
}

func (m *mockAccessObjectRepository) UpdateAccessObject(ctx context.Context, userID int64, id string, update models.AccessObjectUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, update)
	}
	return nil
}

func (m *mockAccessObjectRepository) DeleteAccessObject(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockAccessObjectRepository) IncrementScanCount(ctx context.Context, id string) error {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, id)
	}
	return nil
}

type mockCardRepository struct {
	createFn func(ctx context.Context, card models.Card) (models.Card, error)
	listFn   func(ctx context.Context, userID int64) ([]models.Card, error)
	deleteFn func(ctx context.Context, userID int64, id string) error
}

func (m *mockCardRepository) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	if m.createFn != nil {
		return m.createFn(ctx, card)
	}
	return card, nil
}

func (m *mockCardRepository) ListCards(ctx context.Context, userID int64) ([]models.Card, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCardRepository) DeleteCard(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: adapter.BlobStore / adapter.URLSigner
// ─────────────────────────────────────────────

type mockBlobStore struct {
	ensureFn   func(ctx context.Context) error
	uploadFn   func(ctx context.Context, content io.Reader, key, mimeType string) error
	downloadFn func(ctx context.Context, key string) (io.ReadCloser, error)
	deleteFn   func(ctx context.Context, key string) error
}

func (m *mockBlobStore) EnsureBucket(ctx context.Context) error {
	if m.ensureFn != nil {
		return m.ensureFn(ctx)
	}
	return nil
}

func (m *mockBlobStore) Upload(ctx context.Context, content io.Reader, key, mimeType string) error {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, content, key, mimeType)
	}
	_, err := io.Copy(io.Discard, content)
	return err
}

func (m *mockBlobStore) DownloadStream(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, key)
	}
	return io.NopCloser(nil), nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

type mockURLSigner struct {
	issueFn func(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

func (m *mockURLSigner) IssueGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, bucket, key, ttl)
	}
	return "https://signed.example/" + key, nil
}

// ─────────────────────────────────────────────
// Mock: scan counter
// ─────────────────────────────────────────────

type mockScanCounter struct {
	enqueued []string
}

func (m *mockScanCounter) Enqueue(id string) {
	m.enqueued = append(m.enqueued, id)
}
