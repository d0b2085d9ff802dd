package tokens

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

func (r *PostgresRepository) Insert(ctx context.Context, userID int64, authToken, refreshToken string) (*models.Token, error) {

	query :=
		`INSERT INTO tokens (user_id, auth_token, refresh_token)
         VALUES ($1, $2, $3)
		 RETURNING id, user_id, auth_token, refresh_token, created_at, updated_at
		 `

	token := &models.Token{}
	err := r.db.QueryRowContext(ctx, query, userID, authToken, refreshToken).
		Scan(&token.ID, &token.UserID, &token.AuthToken, &token.RefreshToken, &token.CreatedAt, &token.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) Find(ctx context.Context, userID int64, authToken string) (*models.Token, error) {
	query :=
		`SELECT id, user_id, auth_token, refresh_token, created_at, updated_at FROM tokens
		 WHERE user_id = $1 AND auth_token = $2
		 `

	token := &models.Token{}
	err := r.db.QueryRowContext(ctx, query, userID, authToken).
		Scan(&token.ID, &token.UserID, &token.AuthToken, &token.RefreshToken, &token.CreatedAt, &token.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) UpdateByRefresh(ctx context.Context, userID int64, refreshToken, newAuthToken string) (*models.Token, error) {
	query :=
		`UPDATE tokens SET auth_token = $3, updated_at = now()
		 WHERE user_id = $1 AND refresh_token = $2
		 RETURNING id, user_id, auth_token, refresh_token, created_at, updated_at
		 `

	token := &models.Token{}
	err := r.db.QueryRowContext(ctx, query, userID, refreshToken, newAuthToken).
		Scan(&token.ID, &token.UserID, &token.AuthToken, &token.RefreshToken, &token.CreatedAt, &token.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}
