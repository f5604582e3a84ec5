package telemetry

import (
	"sort"
	"time"

	"github.com/itsatony/airsense/internal/models"
)

// DefaultWindow is the trailing window covered by the hourly rollup.
const DefaultWindow = 24 * time.Hour

// bucketGroup is the set of readings sharing one hour bucket
type bucketGroup struct {
	bucket   Bucket
	readings []models.Reading
}

// FilterOwner keeps the readings owned by userID.
func FilterOwner(readings []models.Reading, userID string) []models.Reading {
	out := make([]models.Reading, 0, len(readings))
	for _, r := range readings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// FilterSince keeps the readings created at or after since.
func FilterSince(readings []models.Reading, since time.Time) []models.Reading {
	out := make([]models.Reading, 0, len(readings))
	for _, r := range readings {
		if !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out
}

// groupByBucket groups readings by hour bucket, ordered by bucket.
func groupByBucket(readings []models.Reading) []bucketGroup {
	index := make(map[Bucket]int)
	groups := []bucketGroup{}
	for _, r := range readings {
		b := BucketOf(r.CreatedAt)
		i, ok := index[b]
		if !ok {
			i = len(groups)
			index[b] = i
			groups = append(groups, bucketGroup{bucket: b})
		}
		groups[i].readings = append(groups[i].readings, r)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].bucket.Before(groups[j].bucket)
	})
	return groups
}

// averageRow computes the selected metric means of one bucket.
func averageRow(g bucketGroup, metrics []Metric) models.RollupRow {
	row := models.RollupRow{Hour: g.bucket.Hour}
	for _, m := range metrics {
		var acc mean
		for _, r := range g.readings {
			acc.add(m.Value(r.MetricValues))
		}
		m.Set(&row.MetricValues, acc.value())
	}
	return row
}

// HourlyRollup averages the readings created at or after since per hour bucket. Rows are
// ordered by hour-of-day; buckets sharing an hour keep calendar order.
func HourlyRollup(readings []models.Reading, metrics []Metric, since time.Time) []models.RollupRow {
	groups := groupByBucket(FilterSince(readings, since))
	rows := make([]models.RollupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, averageRow(g, metrics))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Hour < rows[j].Hour
	})
	return rows
}

// WindowStart returns the inclusive lower bound of the window ending at now.
func WindowStart(now time.Time, window time.Duration) time.Time {
	if window <= 0 {
		window = DefaultWindow
	}
	return now.Add(-window)
}
