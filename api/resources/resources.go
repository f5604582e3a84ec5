// FilePath: api/resources/resources.go
package resources

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itsatony/airsense/internal/errors"
	"github.com/itsatony/airsense/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AggregationService answers the sensor queries
type AggregationService interface {
	RunSingleMetric(ctx context.Context, userID string, filter []string) ([]models.RollupRow, error)
	RunCrossDeviceSummary(ctx context.Context, userID string) ([]models.DeviceSummary, error)
}

// ReadingRecorder stores readings submitted by devices
type ReadingRecorder interface {
	RecordReading(ctx context.Context, userID, deviceID string, input models.ReadingInput) (*models.Reading, error)
}

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Sensors *SensorHandlers
	Data    *DataHandlers
	Health  *HealthHandlers
}

// NewResources creates a new Resources instance
func NewResources(aggregation AggregationService, recorder ReadingRecorder, store Pinger) *Resources {
	return &Resources{
		Sensors: newSensorHandlers(aggregation),
		Data:    &DataHandlers{recorder: recorder},
		Health:  &HealthHandlers{store: store},
	}
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	if isClientError(err.Code) {
		nuts.L.Warnf("[API] %s", err.Error())
		return
	}
	nuts.L.Errorf("[API] %s", err.Error())
}

func isClientError(code int) bool {
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondWithInternalError logs err and answers 500 without a body.
func respondWithInternalError(w http.ResponseWriter, requestID string, err error) {
	nuts.L.Errorf("[API] request %s failed: %v", requestID, err)
	w.WriteHeader(http.StatusInternalServerError)
}
