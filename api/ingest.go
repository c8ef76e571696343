package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"journey-map/model"
)

// IngestRequest is the ingestion boundary payload. Either each field is a
// single value, or lat/long/date_taken are newline-delimited parallel
// lists that must zip to equal lengths.
type IngestRequest struct {
	Username  string `json:"username"`
	Lat       string `json:"lat"`
	Long      string `json:"long"`
	DateTaken string `json:"date_taken"`
}

// IngestResponse mirrors the upstream contract: success flag plus either
// a message with counts or an error.
type IngestResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`
	Processed int      `json:"processed,omitempty"`
	Failed    int      `json:"failed,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

func (h *JourneyHandlers) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Error("failed to decode ingest request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, IngestResponse{Success: false, Error: "Invalid request body"})
		return
	}

	if missing := missingIngestFields(req); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, IngestResponse{
			Success: false,
			Error:   "Missing fields: " + strings.Join(missing, ", "),
		})
		return
	}

	rows, err := zipIngestRows(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, IngestResponse{Success: false, Error: err.Error()})
		return
	}

	records := make([]model.IngestRecord, 0, len(rows))
	var failures []string
	for i, row := range rows {
		rec, err := row.toRecord(req.Username)
		if err != nil {
			failures = append(failures, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		records = append(records, rec)
	}

	inserted := 0
	if len(records) > 0 {
		// The pre-structured single-record shape takes the scalar save
		// path; everything else is a batch insert.
		if !isParallelBatch(req) && len(records) == 1 {
			err = h.Ingest.SaveRecord(r.Context(), records[0])
			if err == nil {
				inserted = 1
			}
		} else {
			inserted, err = h.Ingest.SaveBatch(r.Context(), records)
		}
		if err != nil {
			h.Log.Error("ingest store rejected write", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, IngestResponse{Success: false, Error: err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Success:   true,
		Message:   "Received!",
		Processed: inserted,
		Failed:    len(failures),
		Errors:    failures,
	})
}

func missingIngestFields(req IngestRequest) []string {
	var missing []string
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Lat == "" {
		missing = append(missing, "lat")
	}
	if req.Long == "" {
		missing = append(missing, "long")
	}
	if req.DateTaken == "" {
		missing = append(missing, "date_taken")
	}
	return missing
}

// isParallelBatch reports whether any of the three parallel fields is
// newline-delimited, i.e. the request is shape (a) rather than a single
// pre-structured record.
func isParallelBatch(req IngestRequest) bool {
	return strings.Contains(req.Lat, "\n") ||
		strings.Contains(req.Long, "\n") ||
		strings.Contains(req.DateTaken, "\n")
}

// ingestRow is one zipped (lat, long, date) tuple.
type ingestRow struct {
	Lat       string
	Long      string
	DateTaken string
}

// zipIngestRows splits the three parallel fields and zips them by index.
// The splits must produce equal-length lists; a mismatch rejects the
// whole request, naming the three observed lengths.
func zipIngestRows(req IngestRequest) ([]ingestRow, error) {
	lats := splitLines(req.Lat)
	longs := splitLines(req.Long)
	dates := splitLines(req.DateTaken)

	if len(lats) != len(longs) || len(lats) != len(dates) {
		return nil, fmt.Errorf("mismatched field lengths: %d latitudes, %d longitudes, %d dates",
			len(lats), len(longs), len(dates))
	}

	rows := make([]ingestRow, len(lats))
	for i := range lats {
		rows[i] = ingestRow{Lat: lats[i], Long: longs[i], DateTaken: dates[i]}
	}
	return rows, nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (row ingestRow) toRecord(username string) (model.IngestRecord, error) {
	lat, err := strconv.ParseFloat(row.Lat, 64)
	if err != nil {
		return model.IngestRecord{}, fmt.Errorf("invalid latitude %q", row.Lat)
	}
	lng, err := strconv.ParseFloat(row.Long, 64)
	if err != nil {
		return model.IngestRecord{}, fmt.Errorf("invalid longitude %q", row.Long)
	}
	if lat < -90 || lat > 90 {
		return model.IngestRecord{}, fmt.Errorf("latitude %v out of range", lat)
	}
	if lng < -180 || lng > 180 {
		return model.IngestRecord{}, fmt.Errorf("longitude %v out of range", lng)
	}

	return model.IngestRecord{
		Username:  username,
		LonLat:    model.NewGeoJSONPoint(lat, lng),
		DateTaken: row.DateTaken,
	}, nil
}
