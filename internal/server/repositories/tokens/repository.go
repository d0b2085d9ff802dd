// Package tokens declares the repository contract for issued token rows.
package tokens

import (
	"context"

	"github.com/mpetrovs/authcore/internal/server/models"
)

// Repository defines persistence operations for tokens. Rows are never
// deleted here; expiry is evaluated by the service at authentication time.
type Repository interface {
	// Insert stores a freshly issued auth/refresh pair for the user.
	Insert(ctx context.Context, userID int64, authToken, refreshToken string) (*models.Token, error)

	// Find returns the row matching (userID, authToken), or
	// common.ErrorNotFound.
	Find(ctx context.Context, userID int64, authToken string) (*models.Token, error)

	// UpdateByRefresh replaces the auth token on the row matching
	// (userID, refreshToken) and refreshes its updated-at timestamp. The
	// lookup and the write are one statement; when no row matches it returns
	// common.ErrorNotFound and writes nothing.
	UpdateByRefresh(ctx context.Context, userID int64, refreshToken, newAuthToken string) (*models.Token, error)
}
