package sqlrepo

import (
	"context"

	"github.com/itsatony/airsense/internal/database"
	"github.com/itsatony/airsense/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS devices (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS readings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		device_id TEXT NOT NULL,
		humidity DOUBLE PRECISION,
		pressure DOUBLE PRECISION,
		temperature DOUBLE PRECISION,
		gas_resistance DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_devices_user ON devices(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_user_created ON readings(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_device_created ON readings(device_id, created_at DESC)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS devices (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS readings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		device_id TEXT NOT NULL,
		humidity REAL,
		pressure REAL,
		temperature REAL,
		gas_resistance REAL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_devices_user ON devices(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_user_created ON readings(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_device_created ON readings(device_id, created_at DESC)`,
}

// Migrate creates the tables and indexes used by the repositories.
func Migrate(ctx context.Context, db database.DB) error {
	queries := postgresSchema
	if db.GetDB().DriverName() == "sqlite3" {
		queries = sqliteSchema
	}

	for _, query := range queries {
		if _, err := db.GetDB().ExecContext(ctx, query); err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}

	nuts.L.Infof("[Schema] %s schema is up to date", db.GetDB().DriverName())
	return nil
}
