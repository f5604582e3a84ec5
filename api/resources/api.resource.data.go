package resources

import (
	"encoding/json"
	"net/http"

	"github.com/itsatony/airsense/internal/auth"
	"github.com/itsatony/airsense/internal/errors"
	"github.com/itsatony/airsense/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// DataHandlers accepts readings from devices
type DataHandlers struct {
	recorder ReadingRecorder
}

// @Summary Record a reading
// @Description Store a reading submitted by the calling device
// @Tags data
// @Accept json
// @Produce json
// @Param reading body models.ReadingInput true "Reading values"
// @Success 200 {object} models.Reading
// @Failure 400 {object} errors.APIError
// @Failure 401
// @Failure 403 {object} errors.APIError
// @Failure 500
// @Router /data [post]
// @Security BearerAuth
func (h *DataHandlers) CreateDataPoint(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if r.Body == nil || r.Body == http.NoBody {
		respondWithError(w, errors.NewValidationError("expected a request body", nil).WithRequestID(requestID))
		return
	}

	var input models.ReadingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	reading, err := h.recorder.RecordReading(r.Context(), claims.UserID, claims.DeviceID, input)
	if err != nil {
		respondWithInternalError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reading)
}
