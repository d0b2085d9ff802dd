// Package repomanager hands out repositories bound to a database handle.
// Passing a transactional handle makes every repository obtained from the
// same call participate in that transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mpetrovs/authcore/internal/dbx"
	"github.com/mpetrovs/authcore/internal/server/repositories/credentials"
	"github.com/mpetrovs/authcore/internal/server/repositories/tokens"
	"github.com/mpetrovs/authcore/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	Tokens(db dbx.DBTX) tokens.Repository
}
