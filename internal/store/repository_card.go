package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
)

// cardRepository is the PostgreSQL-backed implementation of [CardRepository].
// Sensitive card fields arrive already encrypted and paired with their MACs;
// this layer stores and returns them verbatim.
type cardRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCardRepository constructs a [CardRepository] backed by the provided
// database connection and logger.
func NewCardRepository(db *DB, logger *logger.Logger) CardRepository {
	logger.Debug().Msg("creating card repository")
	return &cardRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCard persists a new card record and returns the canonical database
// representation including the server-assigned CreatedAt.
func (r *cardRepository) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createCard,
		card.ID, card.UserID, card.Title, card.NumberCiphertext, card.NumberHMAC,
		card.CVVCiphertext, card.CVVHMAC, card.Holder, card.Expiry)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*cardRepository.CreateCard").Msg("error: row is nil")
		return models.Card{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var saved models.Card
	if err := row.Scan(&saved.ID, &saved.UserID, &saved.Title, &saved.NumberCiphertext, &saved.NumberHMAC,
		&saved.CVVCiphertext, &saved.CVVHMAC, &saved.Holder, &saved.Expiry, &saved.CreatedAt); err != nil {
		log.Err(err).Str("func", "*cardRepository.CreateCard").Msg("error: scanning error")
		return models.Card{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// ListCards returns all of the owner's cards, newest first.
func (r *cardRepository) ListCards(ctx context.Context, userID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCards, userID)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.ListCards").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cards := make([]models.Card, 0)
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(&card.ID, &card.UserID, &card.Title, &card.NumberCiphertext, &card.NumberHMAC,
			&card.CVVCiphertext, &card.CVVHMAC, &card.Holder, &card.Expiry, &card.CreatedAt); err != nil {
			log.Err(err).Str("func", "*cardRepository.ListCards").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cards, nil
}

// DeleteCard removes an owner's card record.
func (r *cardRepository) DeleteCard(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteCard, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.DeleteCard").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCardNotFound
	}

	return nil
}
