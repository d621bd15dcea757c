// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. Only metadata lives here; the encrypted content is
// held by the remote blob store and referenced through blob_key.
type documentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

// CreateDocument persists a new document metadata record and returns the
// canonical database representation including the server-assigned CreatedAt.
//
// Callers must have already uploaded the encrypted blob: a record without a
// live blob behind its blob_key is never written by the service layer.
func (r *documentRepository) CreateDocument(ctx context.Context, document models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createDocument,
		document.ID, document.UserID, document.Name, document.MimeType,
		document.Size, document.BlobKey, document.IVHex, document.Category, document.FolderID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*documentRepository.CreateDocument").Msg("error: row is nil")
		return models.Document{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var saved models.Document
	if err := row.Scan(&saved.ID, &saved.UserID, &saved.Name, &saved.MimeType,
		&saved.Size, &saved.BlobKey, &saved.IVHex, &saved.Category, &saved.FolderID, &saved.CreatedAt); err != nil {
		log.Err(err).Str("func", "*documentRepository.CreateDocument").Msg("error: scanning error")
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// GetDocument fetches a single document scoped to its owner. A miss on
// either the id or the owner yields [ErrDocumentNotFound]; callers cannot
// distinguish "absent" from "someone else's".
func (r *documentRepository) GetDocument(ctx context.Context, userID int64, id string) (models.Document, error) {
	return r.scanDocumentRow(ctx, "*documentRepository.GetDocument", getDocument, userID, id)
}

// GetDocumentByID fetches a document by id alone. The public access gateway
// uses it after proving access-object membership, which replaces ownership
// as the authorization check.
func (r *documentRepository) GetDocumentByID(ctx context.Context, id string) (models.Document, error) {
	return r.scanDocumentRow(ctx, "*documentRepository.GetDocumentByID", getDocumentByID, id)
}

func (r *documentRepository) scanDocumentRow(ctx context.Context, fn, query string, args ...any) (models.Document, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error: row is nil")
		return models.Document{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var found models.Document
	if err := row.Scan(&found.ID, &found.UserID, &found.Name, &found.MimeType,
		&found.Size, &found.BlobKey, &found.IVHex, &found.Category, &found.FolderID, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}
		log.Err(err).Str("func", fn).Msg("error: scanning error")
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// ListDocuments returns the owner's documents, newest first, optionally
// narrowed by category and folder.
func (r *documentRepository) ListDocuments(ctx context.Context, userID int64, filter models.DocumentFilter) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("id", "user_id", "name", "mime_type", "size", "blob_key", "iv_hex", "category", "folder_id", "created_at").
		From("documents").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.FolderID != nil {
		builder = builder.Where(sq.Eq{"folder_id": *filter.FolderID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.ListDocuments").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.ListDocuments").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	documents := make([]models.Document, 0)
	for rows.Next() {
		var document models.Document
		if err := rows.Scan(&document.ID, &document.UserID, &document.Name, &document.MimeType,
			&document.Size, &document.BlobKey, &document.IVHex, &document.Category, &document.FolderID, &document.CreatedAt); err != nil {
			log.Err(err).Str("func", "*documentRepository.ListDocuments").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		documents = append(documents, document)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return documents, nil
}

// UpdateDocument applies one metadata operation, scoped to the owner.
// Content-bearing columns (blob_key, iv_hex, size, mime_type) are never
// touched: stored documents are immutable apart from display metadata.
func (r *documentRepository) UpdateDocument(ctx context.Context, userID int64, id string, update models.DocumentUpdate) error {
	log := logger.FromContext(ctx)

	builder := sq.Update("documents").
		Where(sq.Eq{"user_id": userID, "id": id}).
		PlaceholderFormat(sq.Dollar)

	switch update.Op {
	case models.DocumentOpRename:
		builder = builder.Set("name", *update.Name)
	case models.DocumentOpRecategorize:
		builder = builder.Set("category", *update.Category)
	case models.DocumentOpMoveFolder:
		builder = builder.Set("folder_id", update.FolderID)
	default:
		return fmt.Errorf("%w: unknown document update op %q", ErrBuildingSQLQuery, update.Op)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.UpdateDocument").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.UpdateDocument").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

// DeleteDocument removes an owner's document metadata record. The caller is
// responsible for deleting the blob first; a metadata row must never outlive
// having no way to reach its content key.
func (r *documentRepository) DeleteDocument(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteDocument, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.DeleteDocument").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}
