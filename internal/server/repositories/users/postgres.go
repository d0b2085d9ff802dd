package users

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

func (r *PostgresRepository) Insert(ctx context.Context, name, passwordHash, salt string) (*models.User, error) {

	query :=
		`INSERT INTO users (name, password_hash, salt)
         VALUES ($1, $2, $3)
		 RETURNING id, name, password_hash, salt, created_at, updated_at
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, name, passwordHash, salt).
		Scan(&user.ID, &user.Name, &user.PasswordHash, &user.Salt, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, name, password_hash, salt, created_at, updated_at FROM users
		 WHERE id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.PasswordHash, &user.Salt, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET name = $2, password_hash = $3, salt = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING id, name, password_hash, salt, created_at, updated_at
		 `

	updated := &models.User{}
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.PasswordHash, user.Salt).
		Scan(&updated.ID, &updated.Name, &updated.PasswordHash, &updated.Salt, &updated.CreatedAt, &updated.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}
