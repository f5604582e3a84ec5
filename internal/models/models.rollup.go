// FilePath: internal/models/models.rollup.go
package models

// RollupRow is one hour of averaged readings for a user. Only the metrics that were
// selected and had at least one value in the hour are set.
type RollupRow struct {
	Hour int `json:"hour"`
	MetricValues
}

// HourlySeries maps an hour label ("0".."23") to the averaged metric value of that hour.
type HourlySeries map[string]float64

// DeviceSummary combines the latest raw reading of a device with its hourly history
type DeviceSummary struct {
	DeviceID      string       `json:"-"`
	Device        *string      `json:"device,omitempty"`
	Latest        MetricValues `json:"latest"`
	Humidity      HourlySeries `json:"humidity,omitempty"`
	Pressure      HourlySeries `json:"pressure,omitempty"`
	Temperature   HourlySeries `json:"temperature,omitempty"`
	GasResistance HourlySeries `json:"gasResistance,omitempty"`
}
