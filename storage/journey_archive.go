package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"

	"journey-map/model"
)

// JourneyArchive keeps a local history of committed journeys so past
// uploads remain inspectable after the in-memory session moves on.
type JourneyArchive struct {
	db *sql.DB
}

// ArchivedJourney is one committed journey's summary row.
type ArchivedJourney struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	TotalPhotos     int       `json:"total_photos"`
	TotalPoints     int       `json:"total_points"`
	DistanceKm      float64   `json:"distance_km"`
	StartTS         int64     `json:"start_ts"`
	EndTS           int64     `json:"end_ts"`
	DurationDays    int       `json:"duration_days"`
	MostActiveLabel string    `json:"most_active_label,omitempty"`
	MostActiveCount int       `json:"most_active_count,omitempty"`
}

// OpenJourneyArchive opens (creating if needed) the sqlite archive.
func OpenJourneyArchive(path string) (*JourneyArchive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("archive migrations failed: %w", err)
	}

	return &JourneyArchive{db: db}, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS journeys (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		total_photos INTEGER NOT NULL,
		total_points INTEGER NOT NULL,
		distance_km REAL NOT NULL,
		start_ts INTEGER NOT NULL,
		end_ts INTEGER NOT NULL,
		duration_days INTEGER NOT NULL,
		most_active_label TEXT,
		most_active_count INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS journey_points (
		journey_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		captured_at INTEGER NOT NULL,
		source_ref TEXT,
		PRIMARY KEY (journey_id, seq)
	)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *JourneyArchive) Close() error {
	return a.db.Close()
}

// SaveJourney writes the journey and its statistics in one transaction
// and returns the archived journey's ID.
func (a *JourneyArchive) SaveJourney(j model.Journey, stats model.JourneyStatistics) (string, error) {
	id := uuid.NewString()

	tx, err := a.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	label := ""
	count := 0
	if stats.MostActivePeriod != nil {
		label = stats.MostActivePeriod.Label
		count = stats.MostActivePeriod.Count
	}

	_, err = tx.Exec(
		`INSERT INTO journeys (id, created_at, total_photos, total_points, distance_km, start_ts, end_ts, duration_days, most_active_label, most_active_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().Unix(), stats.TotalPhotos, stats.TotalPoints, stats.TotalDistanceKm,
		stats.StartDate.Unix(), stats.EndDate.Unix(), stats.DurationDays, label, count,
	)
	if err != nil {
		return "", err
	}

	for i, p := range j.Points {
		_, err = tx.Exec(
			`INSERT INTO journey_points (journey_id, seq, lat, lon, captured_at, source_ref) VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, p.Point.Latitude, p.Point.Longitude, p.CapturedAt.Unix(), p.SourceRef,
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// History lists archived journey summaries, newest first.
func (a *JourneyArchive) History(limit int) ([]ArchivedJourney, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := a.db.Query(
		`SELECT id, created_at, total_photos, total_points, distance_km, start_ts, end_ts, duration_days, most_active_label, most_active_count
		 FROM journeys ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchivedJourney
	for rows.Next() {
		var j ArchivedJourney
		var createdAt int64
		var label sql.NullString
		var count sql.NullInt64
		if err := rows.Scan(&j.ID, &createdAt, &j.TotalPhotos, &j.TotalPoints, &j.DistanceKm,
			&j.StartTS, &j.EndTS, &j.DurationDays, &label, &count); err != nil {
			return nil, err
		}
		j.CreatedAt = time.Unix(createdAt, 0)
		j.MostActiveLabel = label.String
		j.MostActiveCount = int(count.Int64)
		out = append(out, j)
	}
	return out, rows.Err()
}

// Points returns an archived journey's path in stored order.
func (a *JourneyArchive) Points(journeyID string) ([]model.JourneyPoint, error) {
	rows, err := a.db.Query(
		`SELECT lat, lon, captured_at, source_ref FROM journey_points WHERE journey_id = ? ORDER BY seq`, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []model.JourneyPoint
	for rows.Next() {
		var p model.JourneyPoint
		var capturedAt int64
		var sourceRef sql.NullString
		if err := rows.Scan(&p.Point.Latitude, &p.Point.Longitude, &capturedAt, &sourceRef); err != nil {
			return nil, err
		}
		p.CapturedAt = time.Unix(capturedAt, 0)
		p.SourceRef = sourceRef.String
		points = append(points, p)
	}
	return points, rows.Err()
}
