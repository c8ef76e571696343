package journey

import (
	"math"
	"reflect"
	"testing"
	"time"

	"journey-map/model"
)

func pointAt(lat, lng float64, at time.Time) model.JourneyPoint {
	return model.JourneyPoint{
		Point:      model.GeoPoint{Latitude: lat, Longitude: lng},
		CapturedAt: at,
	}
}

func TestComputeStatisticsEmptyJourney(t *testing.T) {
	stats := ComputeStatistics(model.Journey{})

	if stats.TotalPoints != 0 || stats.TotalDistanceKm != 0 || stats.DurationDays != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.MostActivePeriod != nil {
		t.Errorf("mostActivePeriod = %+v, want absent", stats.MostActivePeriod)
	}
}

func TestComputeStatisticsSinglePoint(t *testing.T) {
	j := model.Journey{Points: []model.JourneyPoint{
		pointAt(48.85, 2.35, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)),
	}}

	stats := ComputeStatistics(j)
	if stats.TotalDistanceKm != 0 {
		t.Errorf("distance = %v, want 0 for one point", stats.TotalDistanceKm)
	}
	if stats.DurationDays != 0 {
		t.Errorf("duration = %v, want 0 for one point", stats.DurationDays)
	}
}

func TestComputeStatisticsOneDegreeOfLongitude(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	j := model.Journey{Points: []model.JourneyPoint{
		pointAt(0, 0, t0),
		pointAt(0, 1, t0.Add(time.Hour)),
	}}

	stats := ComputeStatistics(j)
	// One degree of longitude at the equator is ~111.19 km.
	if math.Abs(stats.TotalDistanceKm-111.19) > 1 {
		t.Errorf("distance = %v, want ~111.19", stats.TotalDistanceKm)
	}
	if stats.DisplayDistanceKm != 111 {
		t.Errorf("display distance = %v, want 111", stats.DisplayDistanceKm)
	}
}

func TestComputeStatisticsDateRange(t *testing.T) {
	start := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 13, 20, 0, 0, 0, time.UTC)
	j := model.Journey{Points: []model.JourneyPoint{
		pointAt(0, 0, start),
		pointAt(0, 0.5, start.AddDate(0, 0, 1)),
		pointAt(0, 1, end),
	}}

	stats := ComputeStatistics(j)
	if !stats.StartDate.Equal(start) || !stats.EndDate.Equal(end) {
		t.Errorf("range = %v..%v", stats.StartDate, stats.EndDate)
	}
	// 3.5 days of span rounds up to 4.
	if stats.DurationDays != 4 {
		t.Errorf("duration = %v, want 4", stats.DurationDays)
	}
}

func TestComputeStatisticsMinMaxIgnoresOrder(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	// Deliberately unsorted: start/end must still be true min/max.
	j := model.Journey{Points: []model.JourneyPoint{
		pointAt(0, 1, late),
		pointAt(0, 0, early),
	}}

	stats := ComputeStatistics(j)
	if !stats.StartDate.Equal(early) || !stats.EndDate.Equal(late) {
		t.Errorf("range = %v..%v, want %v..%v", stats.StartDate, stats.EndDate, early, late)
	}
}

func TestComputeStatisticsIdempotent(t *testing.T) {
	j := model.Journey{Points: []model.JourneyPoint{
		pointAt(48.85, 2.35, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		pointAt(51.51, -0.13, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),
		pointAt(40.71, -74.01, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)),
	}}

	first := ComputeStatistics(j)
	second := ComputeStatistics(j)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("stats differ:\n%+v\n%+v", first, second)
	}
}

func TestMostActiveMonthSingleMonth(t *testing.T) {
	j := model.Journey{Points: []model.JourneyPoint{
		pointAt(0, 0, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		pointAt(0, 1, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		pointAt(0, 2, time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)),
	}}

	stats := ComputeStatistics(j)
	if stats.MostActivePeriod == nil {
		t.Fatal("mostActivePeriod absent")
	}
	if stats.MostActivePeriod.Label != "March" || stats.MostActivePeriod.Count != 3 {
		t.Errorf("mostActivePeriod = %+v, want March/3", stats.MostActivePeriod)
	}
}

func TestMostActiveMonthWinner(t *testing.T) {
	j := model.Journey{Points: []model.JourneyPoint{
		pointAt(0, 0, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		pointAt(0, 1, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		pointAt(0, 2, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)),
		pointAt(0, 3, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)),
	}}

	stats := ComputeStatistics(j)
	if stats.MostActivePeriod.Label != "February" || stats.MostActivePeriod.Count != 3 {
		t.Errorf("mostActivePeriod = %+v, want February/3", stats.MostActivePeriod)
	}
}

func TestMostActiveMonthTieGoesToFirstReachingMax(t *testing.T) {
	// April appears first, but March reaches count 2 before April does.
	j := model.Journey{Points: []model.JourneyPoint{
		pointAt(0, 0, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		pointAt(0, 1, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
		pointAt(0, 2, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
		pointAt(0, 3, time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)),
	}}

	stats := ComputeStatistics(j)
	if stats.MostActivePeriod.Label != "March" {
		t.Errorf("mostActivePeriod = %+v, want March (reached 2 first)", stats.MostActivePeriod)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := model.GeoPoint{Latitude: 48.8566, Longitude: 2.3522}
	b := model.GeoPoint{Latitude: 51.5074, Longitude: -0.1278}

	ab := haversineM(a, b)
	ba := haversineM(b, a)
	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("haversine not symmetric: %v vs %v", ab, ba)
	}
	// Paris to London is roughly 344 km.
	if math.Abs(ab/1000-344) > 5 {
		t.Errorf("Paris-London = %v km, want ~344", ab/1000)
	}
}
