package journey

import (
	"math"

	"journey-map/model"
)

// earthRadiusM is the Earth's mean radius in meters.
const earthRadiusM = 6371000.0

// ComputeStatistics derives trip statistics from a journey. Pure: calling
// it twice on the same journey yields identical results.
func ComputeStatistics(j model.Journey) model.JourneyStatistics {
	stats := model.JourneyStatistics{
		TotalPhotos: len(j.Points),
		TotalPoints: len(j.Points),
	}
	if len(j.Points) == 0 {
		return stats
	}

	stats.TotalDistanceKm = totalDistanceKm(j.Points)
	stats.DisplayDistanceKm = int(math.Round(stats.TotalDistanceKm))

	// The journey is sorted ascending, but start/end are computed as true
	// min/max so the result survives any relaxation of that invariant.
	start, end := j.Points[0].CapturedAt, j.Points[0].CapturedAt
	for _, p := range j.Points[1:] {
		if p.CapturedAt.Before(start) {
			start = p.CapturedAt
		}
		if p.CapturedAt.After(end) {
			end = p.CapturedAt
		}
	}
	stats.StartDate = start
	stats.EndDate = end
	if len(j.Points) > 1 {
		stats.DurationDays = int(math.Ceil(end.Sub(start).Hours() / 24))
	}

	stats.MostActivePeriod = mostActiveMonth(j.Points)
	return stats
}

func totalDistanceKm(points []model.JourneyPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += haversineM(points[i-1].Point, points[i].Point) / 1000
	}
	return total
}

// haversineM is the great-circle distance between two points in meters.
func haversineM(p1, p2 model.GeoPoint) float64 {
	phi1 := p1.Latitude * math.Pi / 180
	phi2 := p2.Latitude * math.Pi / 180
	dPhi := (p2.Latitude - p1.Latitude) * math.Pi / 180
	dLambda := (p2.Longitude - p1.Longitude) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// mostActiveMonth buckets points by calendar month name and returns the
// busiest bucket. Ties go to whichever bucket reached the winning count
// first in a left-to-right pass over the points.
func mostActiveMonth(points []model.JourneyPoint) *model.PeriodActivity {
	if len(points) == 0 {
		return nil
	}

	counts := make(map[string]int)
	best := model.PeriodActivity{}
	for _, p := range points {
		label := p.CapturedAt.Month().String()
		counts[label]++
		if counts[label] > best.Count {
			best = model.PeriodActivity{Label: label, Count: counts[label]}
		}
	}
	return &best
}
