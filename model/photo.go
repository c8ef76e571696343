package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredPhoto describes an uploaded photo blob after it has been written
// to the configured storage backend.
type StoredPhoto struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	Size          int64  `json:"size"`
	ContentType   string `json:"content_type"`
}

// IngestRecord is one raw photo-location row at the ingestion boundary.
type IngestRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	LonLat     *GeoJSONPoint      `bson:"lonlat,omitempty"`
	DateTaken  string             `bson:"date_taken"`
	ReceivedAt time.Time          `bson:"received_at"`
}

// GeoJSONPoint is the store's point encoding; coordinates are
// [longitude, latitude].
type GeoJSONPoint struct {
	Type        string    `bson:"type,omitempty"`
	Coordinates []float64 `bson:"coordinates,omitempty"`
}

// NewGeoJSONPoint builds the store encoding from a latitude/longitude pair.
func NewGeoJSONPoint(lat, lng float64) *GeoJSONPoint {
	return &GeoJSONPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}
