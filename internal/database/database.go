// FilePath: internal/database/database.go
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/itsatony/airsense/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	nuts "github.com/vaudience/go-nuts"
)

// DB is an interface that both PostgreSQL and SQLite connections implement
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	GetDB() *sqlx.DB
}

// PostgresDB represents a PostgreSQL database connection
type PostgresDB struct {
	db *sqlx.DB
}

// SQLiteDB represents an embedded SQLite database
type SQLiteDB struct {
	db *sqlx.DB
}

// Open connects to the database selected by cfg.Driver.
func Open(cfg config.DatabaseConfig) (DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresDB(cfg.Postgres)
	case config.DriverSQLite:
		return NewSQLiteDB(cfg.SQLite)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg config.PostgresConfig) (DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}

	nuts.L.Infof("[PostgresDB] Connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	return &PostgresDB{db: db}, nil
}

// NewSQLiteDB opens (and creates if needed) an SQLite database file
func NewSQLiteDB(cfg config.SQLiteConfig) (DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite database: %w", err)
	}
	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	nuts.L.Infof("[SQLiteDB] Opened %s", cfg.Path)
	return &SQLiteDB{db: db}, nil
}

// Implementation of DB interface for PostgresDB
func (p *PostgresDB) Close() error {
	return p.db.Close()
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresDB) GetDB() *sqlx.DB {
	return p.db
}

// Implementation of DB interface for SQLiteDB
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDB) GetDB() *sqlx.DB {
	return s.db
}
