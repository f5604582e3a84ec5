// Package telemetry turns raw device readings into hourly rollups and per-device summaries.
package telemetry

import (
	"strconv"
	"time"
)

// Bucket identifies one calendar hour in UTC
type Bucket struct {
	Year  int
	Month time.Month
	Day   int
	Hour  int
}

// BucketOf returns the UTC hour bucket containing t.
func BucketOf(t time.Time) Bucket {
	t = t.UTC()
	return Bucket{
		Year:  t.Year(),
		Month: t.Month(),
		Day:   t.Day(),
		Hour:  t.Hour(),
	}
}

// HourLabel renders the hour-of-day of b. Labels repeat across days.
func HourLabel(b Bucket) string {
	return strconv.Itoa(b.Hour)
}

// Start returns the first instant of the bucket.
func (b Bucket) Start() time.Time {
	return time.Date(b.Year, b.Month, b.Day, b.Hour, 0, 0, 0, time.UTC)
}

// Before reports whether b is an earlier hour than o.
func (b Bucket) Before(o Bucket) bool {
	return b.Start().Before(o.Start())
}
