// Package exifmeta adapts goexif output into the raw metadata records the
// journey pipeline consumes. EXIF binary parsing itself stays inside the
// library; only its output contract matters here.
package exifmeta

import (
	"bytes"
	"io"

	"github.com/rwcarlsen/goexif/exif"

	"journey-map/journey"
)

var dateTags = map[exif.FieldName]string{
	exif.DateTimeOriginal:  journey.KeyDateTimeOriginal,
	exif.DateTime:          journey.KeyDateTime,
	exif.DateTimeDigitized: journey.KeyDateTimeDigitized,
}

// Extract decodes EXIF from a reader and builds a metadata record. The
// decoded coordinate lands as a top-level decimal pair; the raw DMS
// triples and hemisphere refs ride along under the GPS sub-record so the
// resolver chain can fall back to them.
func Extract(r io.Reader) (journey.Record, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, err
	}

	rec := journey.Record{}

	if lat, lng, err := x.LatLong(); err == nil {
		rec[journey.KeyLatitude] = lat
		rec[journey.KeyLongitude] = lng
	}

	gps := journey.Record{}
	if triple, ok := dmsTriple(x, exif.GPSLatitude); ok {
		gps[journey.KeyGPSLatitude] = triple
		gps[journey.KeyGPSLatitudeRef] = refLetter(x, exif.GPSLatitudeRef)
	}
	if triple, ok := dmsTriple(x, exif.GPSLongitude); ok {
		gps[journey.KeyGPSLongitude] = triple
		gps[journey.KeyGPSLongitudeRef] = refLetter(x, exif.GPSLongitudeRef)
	}
	if len(gps) > 0 {
		rec[journey.KeyGPS] = gps
	}

	for tag, key := range dateTags {
		t, err := x.Get(tag)
		if err != nil {
			continue
		}
		if s, err := t.StringVal(); err == nil && s != "" {
			rec[key] = s
		}
	}

	return rec, nil
}

// ExtractBytes is Extract over an in-memory photo, for callers that have
// already buffered the upload.
func ExtractBytes(data []byte) (journey.Record, error) {
	return Extract(bytes.NewReader(data))
}

func dmsTriple(x *exif.Exif, name exif.FieldName) ([]float64, bool) {
	tag, err := x.Get(name)
	if err != nil || tag.Count != 3 {
		return nil, false
	}
	triple := make([]float64, 3)
	for i := range triple {
		rat, err := tag.Rat(i)
		if err != nil {
			return nil, false
		}
		triple[i], _ = rat.Float64()
	}
	return triple, true
}

func refLetter(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return s
}
