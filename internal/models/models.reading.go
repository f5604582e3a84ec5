// FilePath: internal/models/models.reading.go
package models

import "time"

// MetricValues holds the four environmental metrics of a reading. A nil field means the
// device did not report that metric; it is never treated as zero.
type MetricValues struct {
	Humidity      *float64 `json:"humidity,omitempty" db:"humidity"`
	Pressure      *float64 `json:"pressure,omitempty" db:"pressure"`
	Temperature   *float64 `json:"temperature,omitempty" db:"temperature"`
	GasResistance *float64 `json:"gasResistance,omitempty" db:"gas_resistance"`
}

// Reading represents a single sample reported by a device
type Reading struct {
	ID       string `json:"id" db:"id"`
	UserID   string `json:"userId" db:"user_id"`
	DeviceID string `json:"deviceId" db:"device_id"`
	MetricValues
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReadingInput is the body accepted by the ingestion endpoint
type ReadingInput struct {
	Humidity      *float64 `json:"humidity"`
	Pressure      *float64 `json:"pressure"`
	Temperature   *float64 `json:"temp"`
	GasResistance *float64 `json:"gasResistance"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
