package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/itsatony/airsense/api/middleware"
	"github.com/itsatony/airsense/api/resources"
	"github.com/itsatony/airsense/internal/auth"
	"github.com/itsatony/airsense/internal/errors"
	"github.com/itsatony/airsense/internal/models"
	"github.com/itsatony/airsense/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenVerifier map[string]*auth.Claims

func (v tokenVerifier) Verify(r *http.Request) (*auth.Claims, error) {
	if claims, ok := v[auth.BearerToken(r)]; ok {
		return claims, nil
	}
	return nil, errors.NewAuthError("invalid token", nil)
}

type fakeService struct {
	calls     int
	userID    string
	filter    []string
	rows      []models.RollupRow
	summaries []models.DeviceSummary
	recorded  *models.Reading
	err       error
	pingErr   error
}

func (f *fakeService) RunSingleMetric(_ context.Context, userID string, filter []string) ([]models.RollupRow, error) {
	f.calls++
	f.userID, f.filter = userID, filter
	if f.err != nil {
		return nil, f.err
	}
	if f.rows == nil {
		return []models.RollupRow{}, nil
	}
	return f.rows, nil
}

func (f *fakeService) RunCrossDeviceSummary(_ context.Context, userID string) ([]models.DeviceSummary, error) {
	f.calls++
	f.userID = userID
	return f.summaries, f.err
}

func (f *fakeService) RecordReading(_ context.Context, userID, deviceID string, input models.ReadingInput) (*models.Reading, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.recorded = &models.Reading{
		ID:       "r-1",
		UserID:   userID,
		DeviceID: deviceID,
		MetricValues: models.MetricValues{
			Humidity:    input.Humidity,
			Temperature: input.Temperature,
		},
		CreatedAt: time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC),
	}
	return f.recorded, nil
}

func (f *fakeService) Ping(context.Context) error { return f.pingErr }

var verifier = tokenVerifier{
	"user-token": {UserID: "user-1", Rights: []auth.Right{auth.RightReadDevice}},
	"device-token": {UserID: "user-1", DeviceID: "device-1",
		Rights: []auth.Right{auth.RightCreateDataPoint}},
	"weak-device-token": {UserID: "user-1", DeviceID: "device-1"},
}

func newTestRouter(svc *fakeService) *Router {
	return NewRouter(resources.NewResources(svc, svc, svc), verifier, RouterConfig{})
}

func do(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	for _, target := range []string{"/api/v1/sensors/hourly", "/api/v1/sensors/latest"} {
		for _, token := range []string{"", "forged"} {
			t.Run(fmt.Sprintf("%s %q", target, token), func(t *testing.T) {
				svc := &fakeService{}
				w := do(t, newTestRouter(svc), http.MethodGet, target, token, "")

				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.Empty(t, w.Body.String())
				assert.Zero(t, svc.calls)
			})
		}
	}
}

func TestHourlyMetricsFilter(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		filter []string
	}{
		{"absent", "", nil},
		{"repeated", "?metrics=humidity&metrics=pressure", []string{"humidity", "pressure"}},
		{"unknown", "?metrics=bogus", []string{"bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			w := do(t, newTestRouter(svc), http.MethodGet, "/api/v1/sensors/hourly"+tt.query, "user-token", "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "user-1", svc.userID)
			assert.Equal(t, tt.filter, svc.filter)
			assert.JSONEq(t, `[]`, w.Body.String())
		})
	}
}

func TestHourlyEmptyMetricsSelectsNothing(t *testing.T) {
	svc := &fakeService{}
	w := do(t, newTestRouter(svc), http.MethodGet, "/api/v1/sensors/hourly?metrics=", "user-token", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.filter)
	assert.Empty(t, telemetry.SelectMetrics(svc.filter))
}

func TestHourlyReturnsRows(t *testing.T) {
	svc := &fakeService{rows: []models.RollupRow{
		{Hour: 9, MetricValues: models.MetricValues{Temperature: models.Float(20.5)}},
	}}

	w := do(t, newTestRouter(svc), http.MethodGet, "/api/v1/sensors/hourly?metrics=temperature", "user-token", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"hour":9,"temperature":20.5}]`, w.Body.String())
}

func TestLatestEmptyIsArray(t *testing.T) {
	w := do(t, newTestRouter(&fakeService{}), http.MethodGet, "/api/v1/sensors/latest", "user-token", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestLatestReturnsSummaries(t *testing.T) {
	name := "Kitchen"
	svc := &fakeService{summaries: []models.DeviceSummary{{
		DeviceID:    "device-1",
		Device:      &name,
		Latest:      models.MetricValues{Temperature: models.Float(21)},
		Temperature: models.HourlySeries{"9": 20.5},
	}}}

	w := do(t, newTestRouter(svc), http.MethodGet, "/api/v1/sensors/latest", "user-token", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"device":"Kitchen","latest":{"temperature":21},"temperature":{"9":20.5}}]`, w.Body.String())
}

func TestEngineFailureHasNoBody(t *testing.T) {
	svc := &fakeService{err: errors.NewDatabaseError("query failed", fmt.Errorf("pq: password authentication failed"))}

	for _, target := range []string{"/api/v1/sensors/hourly", "/api/v1/sensors/latest"} {
		t.Run(target, func(t *testing.T) {
			w := do(t, newTestRouter(svc), http.MethodGet, target, "user-token", "")

			require.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, 0, w.Body.Len())
		})
	}
}

func TestCreateDataPointStoreFailureHasNoBody(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("disk full")}

	w := do(t, newTestRouter(svc), http.MethodPost, "/api/v1/data", "device-token", `{"temp":20}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, w.Body.Len())
}

func TestCreateDataPoint(t *testing.T) {
	svc := &fakeService{}

	w := do(t, newTestRouter(svc), http.MethodPost, "/api/v1/data", "device-token", `{"humidity":41.5,"temp":20}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.recorded)
	assert.Equal(t, "device-1", svc.recorded.DeviceID)
	assert.Equal(t, 20.0, *svc.recorded.Temperature)
	assert.JSONEq(t, `{"id":"r-1","userId":"user-1","deviceId":"device-1","humidity":41.5,"temperature":20,"createdAt":"2024-06-10T12:00:00Z"}`, w.Body.String())
}

func TestCreateDataPointRejections(t *testing.T) {
	tests := []struct {
		name  string
		token string
		body  string
		want  int
	}{
		{"anonymous", "", `{"temp":20}`, http.StatusUnauthorized},
		{"user token", "user-token", `{"temp":20}`, http.StatusForbidden},
		{"missing right", "weak-device-token", `{"temp":20}`, http.StatusForbidden},
		{"missing body", "device-token", "", http.StatusBadRequest},
		{"garbage body", "device-token", `{"temp":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			w := do(t, newTestRouter(svc), http.MethodPost, "/api/v1/data", tt.token, tt.body)

			assert.Equal(t, tt.want, w.Code)
			assert.Nil(t, svc.recorded)
		})
	}
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(&fakeService{}), http.MethodGet, "/api/v1/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = do(t, newTestRouter(&fakeService{pingErr: fmt.Errorf("down")}), http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOpenAPIDocument(t *testing.T) {
	w := do(t, newTestRouter(&fakeService{}), http.MethodGet, "/api/v1/swagger.json", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc["basePath"])
	assert.Contains(t, doc["paths"], "/sensors/hourly")
}

func TestRateLimitedRouter(t *testing.T) {
	svc := &fakeService{}
	router := NewRouter(resources.NewResources(svc, svc, svc), verifier, RouterConfig{
		Limiter: middleware.NewRateLimiter(1, 2),
	})

	codes := map[int]int{}
	for i := 0; i < 4; i++ {
		codes[do(t, router, http.MethodGet, "/api/v1/health", "", "").Code]++
	}
	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 2, codes[http.StatusTooManyRequests])
}
