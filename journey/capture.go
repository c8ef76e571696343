package journey

import "time"

// captureFields is the date-field preference order: original capture,
// generic capture, creation, digitized.
var captureFields = []string{
	KeyDateTimeOriginal,
	KeyDateTime,
	KeyCreateDate,
	KeyDateTimeDigitized,
}

// captureLayouts covers the machine timestamps extractors emit plus the
// human-readable form some upload clients send.
var captureLayouts = []string{
	time.RFC3339,
	"2006:01:02 15:04:05",
	"2006-01-02 15:04:05",
	"Jan 2, 2006 at 3:04 PM",
	"2006:01:02",
	"2006-01-02",
}

// ResolveCaptureTime returns the capture instant for a record. It always
// succeeds: when no date field parses, the file's last-modified time is
// used instead.
func ResolveCaptureTime(rec Record, fallbackModified time.Time) time.Time {
	for _, field := range captureFields {
		v, present := rec[field]
		if !present {
			continue
		}
		if t, ok := parseCaptureValue(v); ok {
			return t
		}
	}
	return fallbackModified
}

func parseCaptureValue(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case string:
		for _, layout := range captureLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
