package resources

import (
	"context"
	"net/http"
	"time"

	"github.com/itsatony/airsense/internal/errors"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type HealthHandlers struct {
	store Pinger
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} errors.APIError
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondWithError(w, errors.NewUnavailableError("store unreachable", err).WithRequestID(nuts.NID("req", 12)))
		return
	}

	respondWithJSON(w, http.StatusOK, HealthStatus{Status: "ok", Version: nuts.GetVersion()})
}

// OpenAPI serves the registered swagger document
func (h *HealthHandlers) OpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("api documentation not registered", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
