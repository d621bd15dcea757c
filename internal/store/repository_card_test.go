package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
)

func newTestCardRepo(t *testing.T) (*cardRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &cardRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func cardColumns() []string {
	return []string{"id", "user_id", "title", "number_ciphertext", "number_hmac", "cvv_ciphertext", "cvv_hmac", "holder", "expiry", "created_at"}
}

func TestCreateCard_Success(t *testing.T) {
	repo, mock, db := newTestCardRepo(t)
	defer db.Close()

	ctx := context.Background()
	card := models.Card{
		ID:               "9b6c2e1a-5f3d-4c28-8e7a-222222222222",
		UserID:           7,
		Title:            "Main card",
		NumberCiphertext: "ciphertext-number",
		NumberHMAC:       "mac-number",
		CVVCiphertext:    "ciphertext-cvv",
		CVVHMAC:          "mac-cvv",
		Holder:           "CARD HOLDER",
		Expiry:           "12/30",
	}

	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO cards").
		WithArgs(card.ID, card.UserID, card.Title, card.NumberCiphertext, card.NumberHMAC,
			card.CVVCiphertext, card.CVVHMAC, card.Holder, card.Expiry).
		WillReturnRows(sqlmock.NewRows(cardColumns()).
			AddRow(card.ID, card.UserID, card.Title, card.NumberCiphertext, card.NumberHMAC,
				card.CVVCiphertext, card.CVVHMAC, card.Holder, card.Expiry, createdAt))

	saved, err := repo.CreateCard(ctx, card)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved.ID != card.ID {
		t.Errorf("expected id %q, got %q", card.ID, saved.ID)
	}
	if !saved.CreatedAt.Equal(createdAt) {
		t.Errorf("expected created_at %v, got %v", createdAt, saved.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestListCards_ReturnsOwnersCards(t *testing.T) {
	repo, mock, db := newTestCardRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM cards").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cardColumns()).
			AddRow("card-2", int64(7), "Newer", "ct2", "mac2", "", "", "", "", time.Now()).
			AddRow("card-1", int64(7), "Older", "ct1", "mac1", "", "", "", "", time.Now().Add(-time.Hour)))

	cards, err := repo.ListCards(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].ID != "card-2" {
		t.Errorf("expected newest card first, got %q", cards[0].ID)
	}
}

func TestListCards_EmptyResult(t *testing.T) {
	repo, mock, db := newTestCardRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM cards").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cardColumns()))

	cards, err := repo.ListCards(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("expected empty slice, got %d cards", len(cards))
	}
}

func TestListCards_QueryError(t *testing.T) {
	repo, mock, db := newTestCardRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM cards").
		WithArgs(int64(7)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ListCards(context.Background(), 7)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Errorf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestDeleteCard_Success(t *testing.T) {
	repo, mock, db := newTestCardRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM cards").
		WithArgs(int64(7), "card-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteCard(context.Background(), 7, "card-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteCard_NotFound(t *testing.T) {
	repo, mock, db := newTestCardRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM cards").
		WithArgs(int64(7), "missing-card").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteCard(context.Background(), 7, "missing-card")
	if !errors.Is(err, ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}
