package journey

import "journey-map/model"

// CoordinateStrategy attempts to read a coordinate pair out of one
// metadata shape. Adding support for a new shape is a list insertion in
// defaultStrategies, not a new branch.
type CoordinateStrategy func(Record) (model.GeoPoint, bool)

var defaultStrategies = []CoordinateStrategy{
	resolveDirectDecimal,
	resolveNestedDecimal,
	resolveDMS,
}

// ResolveCoordinates tries each strategy in priority order and stops at
// the first that yields a pair. The winning pair is then bounds-checked;
// an out-of-range result is discarded, never clamped or wrapped.
func ResolveCoordinates(rec Record) (model.GeoPoint, bool) {
	for _, strategy := range defaultStrategies {
		p, ok := strategy(rec)
		if !ok {
			continue
		}
		if p.Latitude < -90 || p.Latitude > 90 {
			return model.GeoPoint{}, false
		}
		if p.Longitude < -180 || p.Longitude > 180 {
			return model.GeoPoint{}, false
		}
		return p, true
	}
	return model.GeoPoint{}, false
}

// resolveDirectDecimal reads top-level decimal latitude/longitude fields.
func resolveDirectDecimal(rec Record) (model.GeoPoint, bool) {
	lat, ok := floatValue(rec[KeyLatitude])
	if !ok {
		return model.GeoPoint{}, false
	}
	lng, ok := floatValue(rec[KeyLongitude])
	if !ok {
		return model.GeoPoint{}, false
	}
	return model.GeoPoint{Latitude: lat, Longitude: lng}, true
}

// resolveNestedDecimal reads decimal fields off a nested GPS sub-record.
func resolveNestedDecimal(rec Record) (model.GeoPoint, bool) {
	gps, ok := rec.sub(KeyGPS)
	if !ok {
		return model.GeoPoint{}, false
	}
	return resolveDirectDecimal(gps)
}

// resolveDMS reads degrees/minutes/seconds triples plus hemisphere
// reference letters, from the nested GPS sub-record or the top level.
func resolveDMS(rec Record) (model.GeoPoint, bool) {
	holder := rec
	if gps, ok := rec.sub(KeyGPS); ok {
		if _, present := gps[KeyGPSLatitude]; present {
			holder = gps
		}
	}

	lat, ok := dmsToDecimal(holder[KeyGPSLatitude], holder[KeyGPSLatitudeRef], "S")
	if !ok {
		return model.GeoPoint{}, false
	}
	lng, ok := dmsToDecimal(holder[KeyGPSLongitude], holder[KeyGPSLongitudeRef], "W")
	if !ok {
		return model.GeoPoint{}, false
	}
	return model.GeoPoint{Latitude: lat, Longitude: lng}, true
}

// dmsToDecimal converts a [degrees, minutes, seconds] triple to decimal
// degrees, negating when the hemisphere reference matches negativeRef.
// A triple that is not exactly three numeric components yields absent.
func dmsToDecimal(triple any, ref any, negativeRef string) (float64, bool) {
	components, ok := dmsComponents(triple)
	if !ok {
		return 0, false
	}

	decimal := components[0] + components[1]/60 + components[2]/3600
	if r, ok := ref.(string); ok && r == negativeRef {
		decimal = -decimal
	}
	return decimal, true
}

func dmsComponents(triple any) ([3]float64, bool) {
	var out [3]float64

	switch v := triple.(type) {
	case []float64:
		if len(v) != 3 {
			return out, false
		}
		copy(out[:], v)
		return out, true
	case []any:
		if len(v) != 3 {
			return out, false
		}
		for i, c := range v {
			f, ok := floatValue(c)
			if !ok {
				return out, false
			}
			out[i] = f
		}
		return out, true
	default:
		return out, false
	}
}
