package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Login:        "john",
		PasswordHash: "hash",
		Name:         "John",
		Mobile:       "+15550100",
	}

	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"user_id", "login", "password_hash", "name", "mobile", "created_at"}).
		AddRow(1, user.Login, user.PasswordHash, user.Name, user.Mobile, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Login, user.PasswordHash, user.Name, user.Mobile).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Login != user.Login {
		t.Errorf("expected login %s, got %s", user.Login, created.Login)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Login: "john"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Login: "john"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Login: "john"}

	rows := sqlmock.
		NewRows([]string{"user_id"}). // intentionally wrong shape → scan error
		AddRow(1)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	_, err := repo.CreateUser(ctx, user)
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestFindUserByLogin_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"user_id", "login", "password_hash", "name", "mobile", "created_at"}).
		AddRow(1, "john", "hash", "John", "+15550100", now)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john").
		WillReturnRows(rows)

	found, err := repo.FindUserByLogin(ctx, "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Login != "john" {
		t.Errorf("expected login john, got %s", found.Login)
	}
}

func TestFindUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"user_id", "login", "password_hash", "name", "mobile", "created_at"})

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john").
		WillReturnRows(rows)

	_, err := repo.FindUserByLogin(ctx, "john")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByLogin_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByLogin(ctx, "john")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
