package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpetrovs/authcore/internal/common"
	"github.com/mpetrovs/authcore/internal/dbx"
	"github.com/mpetrovs/authcore/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCredential(row interface{ Scan(...any) error }) (*models.Credential, error) {
	cred := &models.Credential{}
	var credType string
	if err := row.Scan(&cred.UserID, &credType, &cred.Value, &cred.Validated, &cred.CreatedAt, &cred.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := models.ParseCredentialType(credType)
	if err != nil {
		return nil, err
	}
	cred.Type = parsed
	return cred, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, userID int64, credType models.CredentialType, value string) (*models.Credential, error) {

	query :=
		`INSERT INTO credentials (user_id, credential_type, credential, validated)
         VALUES ($1, $2, $3, false)
		 RETURNING user_id, credential_type, credential, validated, created_at, updated_at
		 `

	cred, err := scanCredential(r.db.QueryRowContext(ctx, query, userID, string(credType), value))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) GetByValue(ctx context.Context, value string) (*models.Credential, error) {
	query :=
		`SELECT user_id, credential_type, credential, validated, created_at, updated_at FROM credentials
		 WHERE credential = $1
		 `

	cred, err := scanCredential(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Credential, error) {
	query :=
		`SELECT user_id, credential_type, credential, validated, created_at, updated_at FROM credentials
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var creds []*models.Credential
	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return creds, nil
}
