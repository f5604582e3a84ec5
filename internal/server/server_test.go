package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/itsatony/airsense/internal/auth"
	"github.com/itsatony/airsense/internal/config"
	"github.com/itsatony/airsense/internal/models"
	"github.com/itsatony/airsense/internal/repository/sqlrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, RequestTimeout: 5 * time.Second},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "airsense.db")},
		},
		Auth:        config.AuthConfig{Mode: config.AuthModeJWT, Secret: testSecret},
		Aggregation: config.AggregationConfig{Window: 24 * time.Hour},
	}
}

func token(t *testing.T, claims auth.Claims) string {
	signed, err := auth.NewJWTVerifier(testSecret).Sign(claims, time.Hour)
	require.NoError(t, err)
	return signed
}

func call(t *testing.T, h http.Handler, method, target, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServerEndToEnd(t *testing.T) {
	s := New(testConfig(t))
	require.NoError(t, s.initialize(context.Background()))
	t.Cleanup(s.close)

	name := "Kitchen"
	require.NoError(t, sqlrepo.NewDeviceRepository(s.db).Create(context.Background(), &models.Device{
		ID: "device-1", UserID: "user-1", Name: &name, CreatedAt: time.Now().UTC(),
	}))

	deviceToken := token(t, auth.Claims{UserID: "user-1", DeviceID: "device-1",
		Rights: []auth.Right{auth.RightCreateDataPoint}})
	userToken := token(t, auth.Claims{UserID: "user-1", Rights: []auth.Right{auth.RightReadDevice}})
	h := s.srv.Handler

	w := call(t, h, http.MethodPost, "/api/v1/data", deviceToken, `{"humidity":40,"temp":20}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = call(t, h, http.MethodPost, "/api/v1/data", deviceToken, `{"humidity":50,"temp":22}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, h, http.MethodGet, "/api/v1/sensors/hourly?metrics=humidity", userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.Contains(t, row, "hour")
		assert.NotContains(t, row, "temperature")
	}

	w = call(t, h, http.MethodGet, "/api/v1/sensors/latest", userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var summaries []struct {
		Device string             `json:"device"`
		Latest map[string]float64 `json:"latest"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Kitchen", summaries[0].Device)
	assert.Equal(t, 50.0, summaries[0].Latest["humidity"])
	assert.Equal(t, 22.0, summaries[0].Latest["temperature"])

	counts, err := s.monitoring.GetEventMetrics("reading.recorded", time.Hour)
	require.NoError(t, err)
	assert.LessOrEqual(t, counts["reading.recorded"], int64(2))

	w = call(t, h, http.MethodGet, "/api/v1/sensors/latest", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestServerOtherUserSeesNothing(t *testing.T) {
	s := New(testConfig(t))
	require.NoError(t, s.initialize(context.Background()))
	t.Cleanup(s.close)

	deviceToken := token(t, auth.Claims{UserID: "user-1", DeviceID: "device-1",
		Rights: []auth.Right{auth.RightCreateDataPoint}})
	w := call(t, s.srv.Handler, http.MethodPost, "/api/v1/data", deviceToken, `{"temp":20}`)
	require.Equal(t, http.StatusOK, w.Code)

	other := token(t, auth.Claims{UserID: "user-2"})
	w = call(t, s.srv.Handler, http.MethodGet, "/api/v1/sensors/hourly", other, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier(config.AuthConfig{Mode: config.AuthModeJWT, Secret: "s"})
	require.NoError(t, err)
	assert.IsType(t, &auth.JWTVerifier{}, v)

	v, err = NewVerifier(config.AuthConfig{Mode: config.AuthModeKeycloak,
		Keycloak: config.KeycloakConfig{URL: "http://localhost:8080", Realm: "airsense"}})
	require.NoError(t, err)
	assert.IsType(t, &auth.KeycloakVerifier{}, v)

	_, err = NewVerifier(config.AuthConfig{Mode: "basic"})
	assert.Error(t, err)
}

func TestWithRequestTimeout(t *testing.T) {
	var deadline time.Time
	h := withRequestTimeout(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, _ = r.Context().Deadline()
	}), time.Second)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, deadline.IsZero())
}
