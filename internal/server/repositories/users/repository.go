// Package users declares the repository contract for the user rows backing
// the identity flows.
package users

import (
	"context"

	"github.com/mpetrovs/authcore/internal/server/models"
)

// Repository defines persistence operations for users.
type Repository interface {
	// Insert stores a new user and returns the persisted row with its
	// DB-assigned id and timestamps.
	Insert(ctx context.Context, name, passwordHash, salt string) (*models.User, error)

	// Get returns the user with the given id, or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.User, error)

	// Update persists the user's name, password hash, and salt, refreshing
	// the updated-at timestamp, and returns the stored row.
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
