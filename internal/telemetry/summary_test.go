package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/itsatony/airsense/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(id, name string) models.Device {
	return models.Device{ID: id, UserID: "user-1", Name: &name}
}

func TestDeviceSummariesKitchenExample(t *testing.T) {
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading("kitchen", day.Add(3*time.Hour), models.Float(50), models.Float(20)),
		reading("kitchen", day.Add(3*time.Hour+10*time.Minute), models.Float(70), models.Float(22)),
		reading("kitchen", day.Add(5*time.Hour), models.Float(60), models.Float(21)),
	}
	directory := map[string]models.Device{"kitchen": named("kitchen", "Kitchen")}

	summaries := DeviceSummaries(readings, directory)

	require.Len(t, summaries, 1)
	raw, err := json.Marshal(summaries[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"device": "Kitchen",
		"latest": {"humidity": 60, "temperature": 21},
		"humidity": {"3": 60, "5": 60},
		"temperature": {"3": 21, "5": 21}
	}`, string(raw))
}

func TestDeviceSummariesLatestIsRawMostRecent(t *testing.T) {
	at := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading("d1", at.Add(time.Second), models.Float(60), nil),
		reading("d1", at, models.Float(40), nil),
	}

	summaries := DeviceSummaries(readings, map[string]models.Device{"d1": named("d1", "Office")})

	require.Len(t, summaries, 1)
	assert.Equal(t, 60.0, *summaries[0].Latest.Humidity)
	assert.Equal(t, models.HourlySeries{"8": 50}, summaries[0].Humidity)
}

func TestDeviceSummariesLatestAcrossDays(t *testing.T) {
	day1 := time.Date(2024, time.June, 9, 22, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, time.June, 10, 1, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading("d1", day2, models.Float(10), nil),
		reading("d1", day1, models.Float(90), models.Float(5)),
	}

	summaries := DeviceSummaries(readings, map[string]models.Device{"d1": named("d1", "Cellar")})

	require.Len(t, summaries, 1)
	assert.Equal(t, 10.0, *summaries[0].Latest.Humidity)
	assert.Nil(t, summaries[0].Latest.Temperature)
}

func TestDeviceSummariesSparsePivot(t *testing.T) {
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading("d1", day.Add(3*time.Hour), models.Float(41), nil),
		reading("d1", day.Add(7*time.Hour), models.Float(47), nil),
	}

	summaries := DeviceSummaries(readings, map[string]models.Device{"d1": named("d1", "Attic")})

	require.Len(t, summaries, 1)
	assert.Equal(t, models.HourlySeries{"3": 41, "7": 47}, summaries[0].Humidity)
	assert.Nil(t, summaries[0].Temperature)
	assert.Nil(t, summaries[0].Pressure)
}

func TestDeviceSummariesHourLabelCollisionKeepsLastDay(t *testing.T) {
	readings := []models.Reading{
		reading("d1", time.Date(2024, time.June, 10, 4, 15, 0, 0, time.UTC), models.Float(80), nil),
		reading("d1", time.Date(2024, time.June, 9, 4, 15, 0, 0, time.UTC), models.Float(20), nil),
	}

	summaries := DeviceSummaries(readings, map[string]models.Device{"d1": named("d1", "Garage")})

	require.Len(t, summaries, 1)
	assert.Equal(t, models.HourlySeries{"4": 80}, summaries[0].Humidity)
}

func TestDeviceSummariesSortedByNameAndInnerJoined(t *testing.T) {
	at := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading("a", at, models.Float(1), nil),
		reading("b", at, models.Float(2), nil),
		reading("orphan", at, models.Float(3), nil),
		reading("c", at, models.Float(4), nil),
	}
	directory := map[string]models.Device{
		"a": named("a", "Zimmer"),
		"b": named("b", "Bad"),
		"c": named("c", "Keller"),
	}

	summaries := DeviceSummaries(readings, directory)

	require.Len(t, summaries, 3)
	names := []string{*summaries[0].Device, *summaries[1].Device, *summaries[2].Device}
	assert.Equal(t, []string{"Bad", "Keller", "Zimmer"}, names)
}

func TestDeviceSummariesIdempotent(t *testing.T) {
	at := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading("a", at, models.Float(1), models.Float(3)),
		reading("b", at.Add(2*time.Hour), models.Float(2), nil),
		reading("a", at.Add(26*time.Hour), models.Float(5), models.Float(7)),
	}
	directory := map[string]models.Device{"a": named("a", "One"), "b": named("b", "Two")}

	first, err := json.Marshal(DeviceSummaries(readings, directory))
	require.NoError(t, err)
	second, err := json.Marshal(DeviceSummaries(readings, directory))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGroupByDeviceHourCapturesGroupLatest(t *testing.T) {
	at := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading("a", at.Add(5*time.Minute), models.Float(1), nil),
		reading("a", at.Add(50*time.Minute), models.Float(3), nil),
		reading("a", at.Add(20*time.Minute), models.Float(2), nil),
	}

	groups := groupByDeviceHour(readings)

	require.Len(t, groups, 1)
	assert.Equal(t, 2.0, *groups[0].means[Humidity])
	assert.Nil(t, groups[0].means[Pressure])
	assert.Equal(t, 3.0, *groups[0].latest.Humidity)
}

func TestDeviceIDs(t *testing.T) {
	at := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	readings := []models.Reading{reading("b", at, nil, nil), reading("a", at, nil, nil), reading("b", at, nil, nil)}

	assert.Equal(t, []string{"a", "b"}, DeviceIDs(readings))
}
