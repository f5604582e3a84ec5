// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/itsatony/airsense/internal/models"
)

// ReadingRepository is the Reading Store: immutable readings keyed by owner and device
type ReadingRepository interface {
	Insert(ctx context.Context, reading *models.Reading) error
	// ListByUser returns every reading of the user ordered by creation time.
	ListByUser(ctx context.Context, userID string) ([]models.Reading, error)
	// ListByUserSince returns the readings of the user created at or after since.
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]models.Reading, error)
	Ping(ctx context.Context) error
}

// DeviceRepository is the Device Directory
type DeviceRepository interface {
	Create(ctx context.Context, device *models.Device) error
	// GetByIDs returns the devices found among ids, keyed by id. Unknown ids are absent.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Device, error)
}
