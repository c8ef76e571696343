package journey

import "strconv"

// Record is the raw metadata bag produced by an extractor for one photo.
// Every field is optional and untyped; resolvers treat absence as
// non-fatal and skip fields they cannot interpret.
type Record map[string]any

// Well-known record keys. Extractors populate whichever subset the photo
// actually carries.
const (
	KeyLatitude  = "latitude"
	KeyLongitude = "longitude"
	KeyGPS       = "gps"

	KeyGPSLatitude     = "GPSLatitude"
	KeyGPSLatitudeRef  = "GPSLatitudeRef"
	KeyGPSLongitude    = "GPSLongitude"
	KeyGPSLongitudeRef = "GPSLongitudeRef"

	KeyDateTimeOriginal  = "DateTimeOriginal"
	KeyDateTime          = "DateTime"
	KeyCreateDate        = "CreateDate"
	KeyDateTimeDigitized = "DateTimeDigitized"
)

func (r Record) sub(key string) (Record, bool) {
	switch v := r[key].(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record(v), true
	default:
		return nil, false
	}
}

// floatValue coerces the numeric encodings extractors actually emit.
func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
