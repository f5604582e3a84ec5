package sqlrepo

import (
	"context"
	"time"

	"github.com/itsatony/airsense/internal/database"
	"github.com/itsatony/airsense/internal/errors"
	"github.com/itsatony/airsense/internal/models"
)

const readingColumns = `id, user_id, device_id, humidity, pressure, temperature, gas_resistance, created_at`

type ReadingRepo struct {
	baseRepo
}

func NewReadingRepository(db database.DB) *ReadingRepo {
	return &ReadingRepo{baseRepo: baseRepo{db: db}}
}

func (r *ReadingRepo) Insert(ctx context.Context, reading *models.Reading) error {
	reading.CreatedAt = reading.CreatedAt.UTC()
	query := `
		INSERT INTO readings (` + readingColumns + `)
		VALUES (:id, :user_id, :device_id, :humidity, :pressure, :temperature, :gas_resistance, :created_at)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, reading)
	if err != nil {
		return errors.NewDatabaseError("failed to insert reading", err)
	}
	return nil
}

func (r *ReadingRepo) ListByUser(ctx context.Context, userID string) ([]models.Reading, error) {
	readings := []models.Reading{}
	query := r.rebind(`
		SELECT ` + readingColumns + `
		FROM readings
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`)

	if err := r.db.GetDB().SelectContext(ctx, &readings, query, userID); err != nil {
		return nil, errors.NewDatabaseError("failed to list readings", err)
	}
	return normalize(readings), nil
}

func (r *ReadingRepo) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]models.Reading, error) {
	readings := []models.Reading{}
	query := r.rebind(`
		SELECT ` + readingColumns + `
		FROM readings
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at ASC, id ASC`)

	if err := r.db.GetDB().SelectContext(ctx, &readings, query, userID, since.UTC()); err != nil {
		return nil, errors.NewDatabaseError("failed to list readings", err)
	}
	return normalize(readings), nil
}

// normalize moves scanned timestamps to UTC; drivers return the session location.
func normalize(readings []models.Reading) []models.Reading {
	for i := range readings {
		readings[i].CreatedAt = readings[i].CreatedAt.UTC()
	}
	return readings
}
