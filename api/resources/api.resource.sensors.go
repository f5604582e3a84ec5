package resources

import (
	"net/http"

	"github.com/gorilla/schema"
	"github.com/itsatony/airsense/internal/auth"
	"github.com/itsatony/airsense/internal/errors"
	"github.com/itsatony/airsense/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SensorQuery holds the query parameters of the hourly rollup
type SensorQuery struct {
	Metrics []string `schema:"metrics"`
}

// SensorHandlers encapsulates the sensor-related HTTP handlers
type SensorHandlers struct {
	service AggregationService
	decoder *schema.Decoder
}

func newSensorHandlers(svc AggregationService) *SensorHandlers {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &SensorHandlers{service: svc, decoder: decoder}
}

// @Summary Hourly sensor averages
// @Description Hourly averages of the caller's readings over the last 24 hours. Without
// @Description a metrics parameter every metric is returned.
// @Tags sensors
// @Produce json
// @Param metrics query []string false "Metrics to include (humidity, pressure, temperature, gasResistance)" collectionFormat(multi)
// @Success 200 {array} models.RollupRow
// @Failure 401
// @Failure 500
// @Router /sensors/hourly [get]
// @Security BearerAuth
func (h *SensorHandlers) GetHourly(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	filter, err := h.metricsFilter(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	rows, err := h.service.RunSingleMetric(r.Context(), claims.UserID, filter)
	if err != nil {
		respondWithInternalError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rows)
}

// @Summary Latest readings per device
// @Description Latest raw reading and hourly history of every named device of the caller
// @Tags sensors
// @Produce json
// @Success 200 {array} models.DeviceSummary
// @Failure 401
// @Failure 500
// @Router /sensors/latest [get]
// @Security BearerAuth
func (h *SensorHandlers) GetLatest(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	summaries, err := h.service.RunCrossDeviceSummary(r.Context(), claims.UserID)
	if err != nil {
		respondWithInternalError(w, requestID, err)
		return
	}
	if summaries == nil {
		summaries = []models.DeviceSummary{}
	}

	respondWithJSON(w, http.StatusOK, summaries)
}

// metricsFilter returns nil when the metrics parameter is absent and a non-nil slice
// otherwise, even if it names nothing.
func (h *SensorHandlers) metricsFilter(r *http.Request) ([]string, error) {
	values := r.URL.Query()
	if _, present := values["metrics"]; !present {
		return nil, nil
	}

	var query SensorQuery
	if err := h.decoder.Decode(&query, values); err != nil {
		return nil, err
	}
	if query.Metrics == nil {
		query.Metrics = []string{}
	}
	return query.Metrics, nil
}
