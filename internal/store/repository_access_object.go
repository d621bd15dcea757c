// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
)

// accessObjectRepository is the PostgreSQL-backed implementation of
// [AccessObjectRepository]. The linked document set is stored as a jsonb
// column and (de)serialized at this boundary.
type accessObjectRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccessObjectRepository constructs an [AccessObjectRepository] backed by
// the provided database connection and logger.
func NewAccessObjectRepository(db *DB, logger *logger.Logger) AccessObjectRepository {
	logger.Debug().Msg("creating access object repository")
	return &accessObjectRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccessObject persists a new access object with a zero scan counter
// and returns the canonical database representation.
func (r *accessObjectRepository) CreateAccessObject(ctx context.Context, accessObject models.AccessObject) (models.AccessObject, error) {
	log := logger.FromContext(ctx)

	linked, err := json.Marshal(accessObject.DocumentIDs)
	if err != nil {
		return models.AccessObject{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, createAccessObject,
		accessObject.ID, accessObject.UserID, accessObject.Name, accessObject.PIN, linked)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*accessObjectRepository.CreateAccessObject").Msg("error: row is nil")
		return models.AccessObject{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanAccessObject(row)
	if err != nil {
		log.Err(err).Str("func", "*accessObjectRepository.CreateAccessObject").Msg("error: scanning error")
		return models.AccessObject{}, err
	}

	return saved, nil
}

// GetAccessObject fetches an access object by id alone. Both the owner CRUD
// path and the anonymous PIN-verification path start here; ownership is
// checked by the service where it applies.
func (r *accessObjectRepository) GetAccessObject(ctx context.Context, id string) (models.AccessObject, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getAccessObject, id)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*accessObjectRepository.GetAccessObject").Msg("error: row is nil")
		return models.AccessObject{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanAccessObject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AccessObject{}, ErrAccessObjectNotFound
		}
		log.Err(err).Str("func", "*accessObjectRepository.GetAccessObject").Msg("error: scanning error")
		return models.AccessObject{}, err
	}

	return found, nil
}

// UpdateAccessObject applies one mutation scoped to the owner. The PIN
// column is never part of an update; it is fixed at creation.
func (r *accessObjectRepository) UpdateAccessObject(ctx context.Context, userID int64, id string, update models.AccessObjectUpdate) error {
	log := logger.FromContext(ctx)

	builder := sq.Update("access_objects").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID, "id": id}).
		PlaceholderFormat(sq.Dollar)

	switch update.Op {
	case models.AccessObjectOpRename:
		builder = builder.Set("name", *update.Name)
	case models.AccessObjectOpRelink:
		linked, err := json.Marshal(update.DocumentIDs)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		builder = builder.Set("document_ids", linked)
	default:
		return fmt.Errorf("%w: unknown access object update op %q", ErrBuildingSQLQuery, update.Op)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*accessObjectRepository.UpdateAccessObject").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accessObjectRepository.UpdateAccessObject").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccessObjectNotFound
	}

	return nil
}

// DeleteAccessObject removes an owner's access object. Linked documents are
// untouched; an access object only references them.
func (r *accessObjectRepository) DeleteAccessObject(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteAccessObject, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*accessObjectRepository.DeleteAccessObject").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccessObjectNotFound
	}

	return nil
}

// IncrementScanCount bumps the scan counter by one. It runs on the
// fire-and-forget worker path, so a miss is reported but never retried.
func (r *accessObjectRepository) IncrementScanCount(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, incrementScanCount, id)
	if err != nil {
		log.Err(err).Str("func", "*accessObjectRepository.IncrementScanCount").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccessObjectNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccessObject(row rowScanner) (models.AccessObject, error) {
	var (
		accessObject models.AccessObject
		linked       []byte
	)
	if err := row.Scan(&accessObject.ID, &accessObject.UserID, &accessObject.Name, &accessObject.PIN,
		&linked, &accessObject.ScanCount, &accessObject.CreatedAt, &accessObject.UpdatedAt); err != nil {
		return models.AccessObject{}, err
	}
	if err := json.Unmarshal(linked, &accessObject.DocumentIDs); err != nil {
		return models.AccessObject{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return accessObject, nil
}
