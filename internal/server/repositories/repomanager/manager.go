// Package repomanager vends repository implementations bound to a specific
// database handle, so the same repository code runs against *sql.DB or an
// open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/yourplaces/backend/internal/dbx"
	"github.com/yourplaces/backend/internal/server/repositories/places"
	"github.com/yourplaces/backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Places(db dbx.DBTX) places.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
