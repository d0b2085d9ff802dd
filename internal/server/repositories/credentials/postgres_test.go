package credentials

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mpetrovs/authcore/internal/common"
	"github.com/mpetrovs/authcore/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var credCols = []string{"user_id", "credential_type", "credential", "validated", "created_at", "updated_at"}

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+credentials\s*\(user_id,\s*credential_type,\s*credential,\s*validated\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*false\)\s*RETURNING\s+user_id,\s*credential_type,\s*credential,\s*validated,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows(credCols).AddRow(int64(1), "Email", "alice@example.com", false, now, now)
	mock.ExpectQuery(q).
		WithArgs(int64(1), "Email", "alice@example.com").
		WillReturnRows(rows)

	got, err := repo.Insert(context.Background(), 1, models.CredentialTypeEmail, "alice@example.com")
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if got.UserID != 1 || got.Type != models.CredentialTypeEmail || got.Value != "alice@example.com" || got.Validated {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestInsert_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+credentials`).
		WithArgs(int64(1), "Email", "alice@example.com").
		WillReturnError(errors.New(`duplicate key value violates unique constraint "credentials_credential_key"`))

	_, err := repo.Insert(context.Background(), 1, models.CredentialTypeEmail, "alice@example.com")
	if err == nil || !regexp.MustCompile(`db error: .*unique constraint`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped unique violation, got %v", err)
	}
}

func TestGetByValue_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(credCols).AddRow(int64(3), "Username", "alice", true, now, now)
	mock.ExpectQuery(`SELECT\s+user_id,\s*credential_type,\s*credential,\s*validated,\s*created_at,\s*updated_at\s+FROM\s+credentials\s+WHERE\s+credential\s*=\s*\$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByValue(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByValue error: %v", err)
	}
	if got.UserID != 3 || got.Type != models.CredentialTypeUsername || !got.Validated {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestGetByValue_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+user_id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByValue(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByValue_BadStoredType(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(credCols).AddRow(int64(3), "Telegraph", "alice", false, now, now)
	mock.ExpectQuery(`SELECT\s+user_id`).
		WithArgs("alice").
		WillReturnRows(rows)

	_, err := repo.GetByValue(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`unknown credential type`).MatchString(err.Error()) {
		t.Fatalf("expected unknown credential type error, got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(credCols).
		AddRow(int64(5), "Email", "bob@example.com", true, now, now).
		AddRow(int64(5), "Username", "bob", false, now, now)
	mock.ExpectQuery(`SELECT\s+user_id,.*FROM\s+credentials\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].Value != "bob@example.com" || got[1].Value != "bob" {
		t.Fatalf("unexpected credentials: %+v", got)
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+user_id,.*FROM\s+credentials`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(credCols))

	got, err := repo.ListByUser(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no credentials, got %+v", got)
	}
}
