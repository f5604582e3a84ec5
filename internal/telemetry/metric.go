package telemetry

import "github.com/itsatony/airsense/internal/models"

// Metric names one of the environmental values carried by a reading
type Metric string

const (
	Humidity      Metric = "humidity"
	Pressure      Metric = "pressure"
	Temperature   Metric = "temperature"
	GasResistance Metric = "gasResistance"
)

// AllMetrics lists every metric in canonical order.
var AllMetrics = []Metric{Humidity, Pressure, Temperature, GasResistance}

// SelectMetrics resolves a client filter into the metrics to compute. A nil filter selects
// all metrics. Unknown names are dropped, so a non-nil filter may select nothing.
func SelectMetrics(filter []string) []Metric {
	if filter == nil {
		return append([]Metric(nil), AllMetrics...)
	}
	wanted := make(map[Metric]bool, len(filter))
	for _, name := range filter {
		wanted[Metric(name)] = true
	}
	selected := []Metric{}
	for _, m := range AllMetrics {
		if wanted[m] {
			selected = append(selected, m)
		}
	}
	return selected
}

// Value returns the metric from v, or nil when absent.
func (m Metric) Value(v models.MetricValues) *float64 {
	switch m {
	case Humidity:
		return v.Humidity
	case Pressure:
		return v.Pressure
	case Temperature:
		return v.Temperature
	case GasResistance:
		return v.GasResistance
	}
	return nil
}

// Set stores x as the metric in v.
func (m Metric) Set(v *models.MetricValues, x *float64) {
	switch m {
	case Humidity:
		v.Humidity = x
	case Pressure:
		v.Pressure = x
	case Temperature:
		v.Temperature = x
	case GasResistance:
		v.GasResistance = x
	}
}

func (m Metric) series(s *models.DeviceSummary) *models.HourlySeries {
	switch m {
	case Humidity:
		return &s.Humidity
	case Pressure:
		return &s.Pressure
	case Temperature:
		return &s.Temperature
	case GasResistance:
		return &s.GasResistance
	}
	return nil
}

// mean accumulates an arithmetic mean over present values only.
type mean struct {
	sum   float64
	count int
}

func (a *mean) add(v *float64) {
	if v == nil {
		return
	}
	a.sum += *v
	a.count++
}

func (a mean) value() *float64 {
	if a.count == 0 {
		return nil
	}
	return models.Float(a.sum / float64(a.count))
}
