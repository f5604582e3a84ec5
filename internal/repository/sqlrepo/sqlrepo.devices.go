package sqlrepo

import (
	"context"

	"github.com/itsatony/airsense/internal/database"
	"github.com/itsatony/airsense/internal/errors"
	"github.com/itsatony/airsense/internal/models"
	"github.com/jmoiron/sqlx"
)

type DeviceRepo struct {
	baseRepo
}

func NewDeviceRepository(db database.DB) *DeviceRepo {
	return &DeviceRepo{baseRepo: baseRepo{db: db}}
}

func (r *DeviceRepo) Create(ctx context.Context, device *models.Device) error {
	device.CreatedAt = device.CreatedAt.UTC()
	query := `
		INSERT INTO devices (id, user_id, name, created_at)
		VALUES (:id, :user_id, :name, :created_at)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, device)
	if err != nil {
		return errors.NewDatabaseError("failed to create device", err)
	}
	return nil
}

func (r *DeviceRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Device, error) {
	result := make(map[string]models.Device, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT id, user_id, name, created_at FROM devices WHERE id IN (?)`, ids)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to build device query", err)
	}

	devices := []models.Device{}
	if err := r.db.GetDB().SelectContext(ctx, &devices, r.rebind(query), args...); err != nil {
		return nil, errors.NewDatabaseError("failed to get devices", err)
	}

	for _, device := range devices {
		device.CreatedAt = device.CreatedAt.UTC()
		result[device.ID] = device
	}
	return result, nil
}
