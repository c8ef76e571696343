package journey

import (
	"time"

	"journey-map/model"
)

// AcceptancePolicy decides whether a photo's capture year qualifies it
// for the journey. An empty policy accepts every year.
type AcceptancePolicy struct {
	years map[int]struct{}
}

// NewYearPolicy builds a policy accepting exactly the given years.
func NewYearPolicy(years ...int) AcceptancePolicy {
	p := AcceptancePolicy{years: make(map[int]struct{}, len(years))}
	for _, y := range years {
		p.years[y] = struct{}{}
	}
	return p
}

// Accepts reports whether the capture instant falls in an accepted year.
func (p AcceptancePolicy) Accepts(t time.Time) bool {
	if len(p.years) == 0 {
		return true
	}
	_, ok := p.years[t.Year()]
	return ok
}

// Years lists the accepted years in no particular order. Empty means all.
func (p AcceptancePolicy) Years() []int {
	out := make([]int, 0, len(p.years))
	for y := range p.years {
		out = append(out, y)
	}
	return out
}

// BuildOutcome classifies what happened to a single photo.
type BuildOutcome int

const (
	Accepted BuildOutcome = iota
	SkippedNoLocation
	SkippedYear
)

// Build combines coordinate and capture-time resolution with the
// acceptance policy. A photo without a resolvable coordinate is rejected
// outright; one outside the accepted years is skipped. The capture-time
// resolver never fails, so location is the only hard requirement.
func Build(rec Record, fallbackModified time.Time, sourceRef string, policy AcceptancePolicy) (model.JourneyPoint, BuildOutcome) {
	point, ok := ResolveCoordinates(rec)
	if !ok {
		return model.JourneyPoint{}, SkippedNoLocation
	}

	capturedAt := ResolveCaptureTime(rec, fallbackModified)
	if !policy.Accepts(capturedAt) {
		return model.JourneyPoint{}, SkippedYear
	}

	return model.JourneyPoint{
		Point:      point,
		CapturedAt: capturedAt,
		SourceRef:  sourceRef,
	}, Accepted
}
