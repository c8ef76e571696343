package journey

import (
	"fmt"
	"sort"
	"strings"

	"journey-map/model"
)

// SharePayload is the title/text pair handed to the sharing layer. What
// the client does with it (share sheet, clipboard) is its own concern.
type SharePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ShareSummary builds the shareable one-liner for a journey.
func ShareSummary(stats model.JourneyStatistics, policy AcceptancePolicy) SharePayload {
	label := journeyLabel(policy)
	return SharePayload{
		Title: label + " Mapped",
		Text: fmt.Sprintf("My %s: %d photos from %d locations, %dkm traveled!",
			label, stats.TotalPhotos, stats.TotalPoints, stats.DisplayDistanceKm),
	}
}

func journeyLabel(policy AcceptancePolicy) string {
	years := policy.Years()
	if len(years) == 0 {
		return "Journey"
	}
	sort.Ints(years)
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = fmt.Sprintf("%d", y)
	}
	return strings.Join(labels, "/") + " Journey"
}
