package service

import (
	"context"
	"fmt"

	"github.com/itsatony/airsense/internal/models"
	"github.com/itsatony/airsense/internal/telemetry"
	nuts "github.com/vaudience/go-nuts"
)

// RunSingleMetric returns the hourly averages of the selected metrics over the trailing
// window. A nil filter selects every metric.
func (s *Service) RunSingleMetric(ctx context.Context, userID string, filter []string) ([]models.RollupRow, error) {
	metrics := telemetry.SelectMetrics(filter)
	since := telemetry.WindowStart(s.now().UTC(), s.window)

	readings, err := s.readings.ListByUserSince(ctx, userID, since)
	if err != nil {
		s.queryFailed("single_metric", userID, err)
		return nil, fmt.Errorf("hourly rollup for user %s: %w", userID, err)
	}

	rows := telemetry.HourlyRollup(telemetry.FilterOwner(readings, userID), metrics, since)
	nuts.L.Debugf("[AggregationService] Hourly rollup for %s: %d readings, %d rows", userID, len(readings), len(rows))
	return rows, nil
}

// RunCrossDeviceSummary returns one summary per named device of the user, ordered by
// device name.
func (s *Service) RunCrossDeviceSummary(ctx context.Context, userID string) ([]models.DeviceSummary, error) {
	readings, err := s.readings.ListByUser(ctx, userID)
	if err != nil {
		s.queryFailed("cross_device", userID, err)
		return nil, fmt.Errorf("device summary for user %s: %w", userID, err)
	}
	readings = telemetry.FilterOwner(readings, userID)

	directory, err := s.devices.GetByIDs(ctx, telemetry.DeviceIDs(readings))
	if err != nil {
		s.queryFailed("cross_device", userID, err)
		return nil, fmt.Errorf("device lookup for user %s: %w", userID, err)
	}

	summaries := telemetry.DeviceSummaries(readings, directory)
	nuts.L.Debugf("[AggregationService] Device summary for %s: %d readings, %d devices", userID, len(readings), len(summaries))
	return summaries, nil
}

func (s *Service) queryFailed(query, userID string, err error) {
	nuts.L.Errorf("[AggregationService] %s query for %s failed: %v", query, userID, err)
	s.emit(EventQueryFailed, map[string]string{
		"query":   query,
		"user_id": userID,
	})
}
