package journey

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"journey-map/model"
)

// ErrNoLocationData marks a batch that completed but accepted zero
// points. It is a user-visible outcome, not a processing failure.
var ErrNoLocationData = errors.New("no photos with location data found")

// Source is one batch entry: an opaque reference to the originating
// photo, its last-modified fallback time, and a function that performs
// the (possibly failing) metadata extraction.
type Source struct {
	Ref     string
	ModTime time.Time
	Extract func() (Record, error)
}

// ProgressFunc receives (percent in [0,100], status) after each batch
// item, whether that item succeeded or not.
type ProgressFunc func(percent float64, status string)

// BatchReport is the per-batch accounting the caller can inspect:
// accepted vs skipped counts plus the messages for items that failed
// outright.
type BatchReport struct {
	Total             int      `json:"total"`
	Accepted          int      `json:"accepted"`
	SkippedNoLocation int      `json:"skipped_no_location"`
	SkippedYear       int      `json:"skipped_year"`
	Failed            int      `json:"failed"`
	Errors            []string `json:"errors,omitempty"`
}

// Skipped is the total of items that did not contribute a point.
func (r BatchReport) Skipped() int {
	return r.SkippedNoLocation + r.SkippedYear + r.Failed
}

// Assembler runs a batch of sources through the record builder and
// produces the ordered journey. It holds no state between batches.
type Assembler struct {
	Policy   AcceptancePolicy
	Progress ProgressFunc
	Log      *zap.Logger
}

// Assemble processes every source independently: an extraction error on
// one item is recorded and the batch continues. Accepted points are
// sorted ascending by capture time with a stable sort, so same-instant
// captures keep their submission order.
func (a *Assembler) Assemble(sources []Source) (model.Journey, BatchReport) {
	report := BatchReport{Total: len(sources)}
	points := make([]model.JourneyPoint, 0, len(sources))

	for i, src := range sources {
		rec, err := src.Extract()
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", src.Ref, err))
			if a.Log != nil {
				a.Log.Warn("failed to extract photo metadata",
					zap.String("source", src.Ref),
					zap.Error(err),
				)
			}
			a.progress(i+1, len(sources))
			continue
		}

		point, outcome := Build(rec, src.ModTime, src.Ref, a.Policy)
		switch outcome {
		case Accepted:
			points = append(points, point)
			report.Accepted++
		case SkippedNoLocation:
			report.SkippedNoLocation++
		case SkippedYear:
			report.SkippedYear++
		}
		a.progress(i+1, len(sources))
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].CapturedAt.Before(points[j].CapturedAt)
	})

	return model.Journey{Points: points}, report
}

func (a *Assembler) progress(done, total int) {
	if a.Progress == nil {
		return
	}
	percent := 100.0
	if total > 0 {
		percent = float64(done) / float64(total) * 100
	}
	a.Progress(percent, fmt.Sprintf("Processed %d of %d", done, total))
}
