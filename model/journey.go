package model

import "time"

// GeoPoint is a validated geographic coordinate. Latitude is in [-90, 90],
// longitude in [-180, 180]; values outside those bounds are never stored.
type GeoPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// JourneyPoint is one accepted photo location. Immutable once built.
type JourneyPoint struct {
	Point      GeoPoint  `json:"point"`
	CapturedAt time.Time `json:"captured_at"`
	SourceRef  string    `json:"source_ref"`
}

// Journey is the chronologically ordered path for one upload batch.
// Points are sorted ascending by CapturedAt; equal timestamps keep the
// order they were submitted in.
type Journey struct {
	Points []JourneyPoint `json:"points"`
}

// PeriodActivity names a calendar bucket and how many points landed in it.
type PeriodActivity struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// JourneyStatistics is derived from a Journey on demand and never stored
// independently of it.
type JourneyStatistics struct {
	TotalPhotos       int             `json:"total_photos"`
	TotalPoints       int             `json:"total_points"`
	TotalDistanceKm   float64         `json:"total_distance_km"`
	DisplayDistanceKm int             `json:"display_distance_km"`
	StartDate         time.Time       `json:"start_date,omitzero"`
	EndDate           time.Time       `json:"end_date,omitzero"`
	DurationDays      int             `json:"duration_days"`
	MostActivePeriod  *PeriodActivity `json:"most_active_period,omitempty"`
}

// RenderPoint is the per-point payload handed to the map renderer: where
// to plot, what thumbnail to show and the formatted capture date for the
// popup. The renderer owns everything past this contract.
type RenderPoint struct {
	Point     GeoPoint `json:"point"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Date      string   `json:"date"`
	SourceRef string   `json:"source_ref"`
}
