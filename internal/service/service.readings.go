package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/itsatony/airsense/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// RecordReading stores a new reading for the device of userID, stamped with the current
// time.
func (s *Service) RecordReading(ctx context.Context, userID, deviceID string, input models.ReadingInput) (*models.Reading, error) {
	reading := &models.Reading{
		ID:       uuid.NewString(),
		UserID:   userID,
		DeviceID: deviceID,
		MetricValues: models.MetricValues{
			Humidity:      input.Humidity,
			Pressure:      input.Pressure,
			Temperature:   input.Temperature,
			GasResistance: input.GasResistance,
		},
		CreatedAt: s.now().UTC(),
	}

	if err := s.readings.Insert(ctx, reading); err != nil {
		nuts.L.Errorf("[ReadingService] Failed to record reading for device %s: %v", deviceID, err)
		return nil, err
	}

	s.emit(EventReadingRecorded, map[string]string{
		"reading_id": reading.ID,
		"device_id":  deviceID,
		"user_id":    userID,
	})
	return reading, nil
}

// RegisterDevice adds a device to the directory
func (s *Service) RegisterDevice(ctx context.Context, userID, name string) (*models.Device, error) {
	device := &models.Device{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}
	if name != "" {
		device.Name = &name
	}

	if err := s.devices.Create(ctx, device); err != nil {
		return nil, err
	}
	nuts.L.Infof("[DeviceService] Registered device %s (%s) for user %s", name, device.ID, userID)
	return device, nil
}
