// Package credentials declares the repository contract for login
// credentials. The database enforces the uniqueness invariants (globally
// unique value, one credential per user and type); the service-level
// duplicate checks are an optimization for error reporting only.
package credentials

import (
	"context"

	"github.com/mpetrovs/authcore/internal/server/models"
)

// Repository defines persistence operations for credentials.
type Repository interface {
	// Insert stores a new, not-yet-validated credential for the user.
	Insert(ctx context.Context, userID int64, credType models.CredentialType, value string) (*models.Credential, error)

	// GetByValue returns the credential with the given value, or
	// common.ErrorNotFound. Values are globally unique.
	GetByValue(ctx context.Context, value string) (*models.Credential, error)

	// ListByUser returns every credential owned by the user.
	ListByUser(ctx context.Context, userID int64) ([]*models.Credential, error)
}
