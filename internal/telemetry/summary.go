package telemetry

import (
	"sort"

	"github.com/itsatony/airsense/internal/models"
)

// deviceHourGroup is the first-stage rollup of one device in one hour bucket
type deviceHourGroup struct {
	deviceID string
	bucket   Bucket
	means    map[Metric]*float64
	latest   models.Reading
}

// groupByDeviceHour averages all metrics per (device, bucket) and records the most recent
// reading of each group. Groups are ordered by device id, then bucket.
func groupByDeviceHour(readings []models.Reading) []deviceHourGroup {
	type key struct {
		deviceID string
		bucket   Bucket
	}
	type acc struct {
		sums   map[Metric]*mean
		latest models.Reading
		seen   bool
	}

	accs := make(map[key]*acc)
	keys := []key{}
	for _, r := range readings {
		k := key{deviceID: r.DeviceID, bucket: BucketOf(r.CreatedAt)}
		a, ok := accs[k]
		if !ok {
			a = &acc{sums: make(map[Metric]*mean, len(AllMetrics))}
			for _, m := range AllMetrics {
				a.sums[m] = &mean{}
			}
			accs[k] = a
			keys = append(keys, k)
		}
		for _, m := range AllMetrics {
			a.sums[m].add(m.Value(r.MetricValues))
		}
		if !a.seen || !r.CreatedAt.Before(a.latest.CreatedAt) {
			a.latest = r
			a.seen = true
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].deviceID != keys[j].deviceID {
			return keys[i].deviceID < keys[j].deviceID
		}
		return keys[i].bucket.Before(keys[j].bucket)
	})

	groups := make([]deviceHourGroup, 0, len(keys))
	for _, k := range keys {
		a := accs[k]
		g := deviceHourGroup{
			deviceID: k.deviceID,
			bucket:   k.bucket,
			means:    make(map[Metric]*float64, len(AllMetrics)),
			latest:   a.latest,
		}
		for _, m := range AllMetrics {
			g.means[m] = a.sums[m].value()
		}
		groups = append(groups, g)
	}
	return groups
}

// foldByDevice collapses the hour groups of each device into one summary. Devices missing
// from the directory are dropped. Hour labels that collide across days keep the value of
// the last folded group.
func foldByDevice(groups []deviceHourGroup, directory map[string]models.Device) []models.DeviceSummary {
	index := make(map[string]int)
	latestAt := make(map[string]models.Reading)
	summaries := []models.DeviceSummary{}

	for _, g := range groups {
		device, ok := directory[g.deviceID]
		if !ok {
			continue
		}
		i, ok := index[g.deviceID]
		if !ok {
			i = len(summaries)
			index[g.deviceID] = i
			summaries = append(summaries, models.DeviceSummary{
				DeviceID: g.deviceID,
				Device:   device.Name,
			})
		}
		s := &summaries[i]

		if prev, seen := latestAt[g.deviceID]; !seen || !g.latest.CreatedAt.Before(prev.CreatedAt) {
			latestAt[g.deviceID] = g.latest
			s.Latest = g.latest.MetricValues
		}

		label := HourLabel(g.bucket)
		for _, m := range AllMetrics {
			v := g.means[m]
			if v == nil {
				continue
			}
			series := m.series(s)
			if *series == nil {
				*series = models.HourlySeries{}
			}
			(*series)[label] = *v
		}
	}
	return summaries
}

// sortByDeviceName orders summaries by device name, unnamed devices first.
func sortByDeviceName(summaries []models.DeviceSummary) {
	name := func(s models.DeviceSummary) string {
		if s.Device == nil {
			return ""
		}
		return *s.Device
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		ni, nj := name(summaries[i]), name(summaries[j])
		if ni != nj {
			return ni < nj
		}
		return summaries[i].DeviceID < summaries[j].DeviceID
	})
}

// DeviceSummaries builds the cross-device summary of the given readings. Each device with
// a directory entry yields one row holding its latest raw reading and, per metric, the
// hourly averages keyed by hour label.
func DeviceSummaries(readings []models.Reading, directory map[string]models.Device) []models.DeviceSummary {
	summaries := foldByDevice(groupByDeviceHour(readings), directory)
	sortByDeviceName(summaries)
	return summaries
}

// DeviceIDs returns the distinct device ids referenced by readings, sorted.
func DeviceIDs(readings []models.Reading) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, r := range readings {
		if !seen[r.DeviceID] {
			seen[r.DeviceID] = true
			ids = append(ids, r.DeviceID)
		}
	}
	sort.Strings(ids)
	return ids
}
