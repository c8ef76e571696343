package journey

import (
	"testing"
	"time"
)

func TestResolveCaptureTimeFieldPriority(t *testing.T) {
	fallback := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{
		KeyDateTimeOriginal: "2024:06:01 10:00:00",
		KeyDateTime:         "2024:07:01 10:00:00",
		KeyCreateDate:       "2024:08:01 10:00:00",
	}

	got := ResolveCaptureTime(rec, fallback)
	want := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want DateTimeOriginal %v", got, want)
	}
}

func TestResolveCaptureTimeSkipsUnparseable(t *testing.T) {
	fallback := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{
		KeyDateTimeOriginal: "not a date",
		KeyDateTime:         "2024-06-01 10:00:00",
	}

	got := ResolveCaptureTime(rec, fallback)
	want := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want next parseable field %v", got, want)
	}
}

func TestResolveCaptureTimeEncodings(t *testing.T) {
	fallback := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", "2024-06-01T10:00:00Z", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"exif", "2024:06:01 10:00:00", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"human readable", "Mar 5, 2024 at 2:30 PM", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{"date only", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCaptureTime(Record{KeyDateTimeOriginal: tt.value}, fallback)
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveCaptureTimeFallback(t *testing.T) {
	fallback := time.Date(2023, 11, 12, 8, 30, 0, 0, time.UTC)

	if got := ResolveCaptureTime(Record{}, fallback); !got.Equal(fallback) {
		t.Errorf("empty record: got %v, want fallback %v", got, fallback)
	}

	rec := Record{KeyDateTimeOriginal: "garbage", KeyDateTime: 42}
	if got := ResolveCaptureTime(rec, fallback); !got.Equal(fallback) {
		t.Errorf("unparseable fields: got %v, want fallback %v", got, fallback)
	}
}

func TestResolveCaptureTimePassesThroughTime(t *testing.T) {
	fallback := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	captured := time.Date(2024, 4, 10, 16, 45, 0, 0, time.UTC)

	got := ResolveCaptureTime(Record{KeyDateTimeOriginal: captured}, fallback)
	if !got.Equal(captured) {
		t.Errorf("got %v, want %v", got, captured)
	}
}
