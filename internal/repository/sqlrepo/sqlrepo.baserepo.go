// Package sqlrepo implements the repositories on top of sqlx for PostgreSQL and SQLite.
package sqlrepo

import (
	"context"

	"github.com/itsatony/airsense/internal/database"
	"github.com/itsatony/airsense/internal/errors"
)

type baseRepo struct {
	db database.DB
}

// rebind converts '?' placeholders to the bind style of the connected driver.
func (r *baseRepo) rebind(query string) string {
	return r.db.GetDB().Rebind(query)
}

func (r *baseRepo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return errors.NewDatabaseError("failed to ping database", err)
	}
	return nil
}

func (r *baseRepo) Close() error {
	if err := r.db.Close(); err != nil {
		return errors.NewDatabaseError("failed to close database", err)
	}
	return nil
}
