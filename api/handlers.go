package api

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"journey-map/exifmeta"
	"journey-map/journey"
	"journey-map/model"
	"journey-map/storage"
)

// JourneyHandlers wires the journey pipeline, blob storage, ingestion
// store and archive into the HTTP surface.
type JourneyHandlers struct {
	Session *journey.Session
	Policy  journey.AcceptancePolicy
	Storage storage.PhotoStorage
	Ingest  storage.IngestStore
	Archive *storage.JourneyArchive
	Log     *zap.Logger

	SecretKey      string
	PasswordHash   string
	MaxUploadBytes int64
}

// Register mounts all routes. Every route runs behind recovery and
// request logging; mutating routes additionally require a valid token.
func (h *JourneyHandlers) Register(router *mux.Router) {
	wrap := func(fn http.HandlerFunc) http.HandlerFunc {
		return RecoveryMiddleware(h.Log, RequestLoggerMiddleware(h.Log, fn))
	}
	auth := func(fn http.HandlerFunc) http.HandlerFunc {
		return wrap(h.authMiddleware(fn))
	}

	router.HandleFunc("/api/login", wrap(h.handleLogin)).Methods(http.MethodPost)
	router.HandleFunc("/api/journey", auth(h.handleUploadBatch)).Methods(http.MethodPost)
	router.HandleFunc("/api/journey", wrap(h.handleGetJourney)).Methods(http.MethodGet)
	router.HandleFunc("/api/journey/history", wrap(h.handleHistory)).Methods(http.MethodGet)
	router.HandleFunc("/api/ingest", auth(h.handleIngest)).Methods(http.MethodPost)
}

// journeyResponse is what the map renderer consumes: the ordered path
// with per-point display payload, the derived statistics and the share
// summary. The "fit view to point set" command is the renderer's to run
// once it has the points.
type journeyResponse struct {
	Outcome string                  `json:"outcome"`
	Message string                  `json:"message,omitempty"`
	Points  []model.RenderPoint     `json:"points"`
	Stats   model.JourneyStatistics `json:"stats"`
	Share   journey.SharePayload    `json:"share"`
	Report  *journey.BatchReport    `json:"report,omitempty"`
}

const (
	outcomeOK             = "ok"
	outcomeNoLocationData = "no_location_data"
)

func (h *JourneyHandlers) handleUploadBatch(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.MaxUploadBytes {
		h.Log.Warn("upload exceeds size limit",
			zap.Int64("content_length", r.ContentLength),
			zap.Int64("limit", h.MaxUploadBytes),
		)
		http.Error(w, "Upload size exceeds limit", http.StatusRequestEntityTooLarge)
		return
	}

	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}
	fileHeaders := r.MultipartForm.File["photos"]
	if len(fileHeaders) == 0 {
		http.Error(w, "No photos uploaded", http.StatusBadRequest)
		return
	}

	// Register the batch before doing any work so a newer upload can
	// invalidate this one while it is still processing.
	token := h.Session.StartBatch()

	sources, stored := h.collectSources(r.Context(), fileHeaders)

	assembler := &journey.Assembler{
		Policy: h.Policy,
		Log:    h.Log,
		Progress: func(percent float64, status string) {
			h.Log.Debug("batch progress", zap.Float64("percent", percent), zap.String("status", status))
		},
	}
	j, report := assembler.Assemble(sources)

	// Even an empty result supersedes the previous journey: the newest
	// upload always wins, whether or not it produced points.
	if err := h.Session.Commit(token, j); err != nil {
		h.Log.Info("discarding stale batch result", zap.Error(err))
		http.Error(w, "Superseded by a newer upload", http.StatusConflict)
		return
	}

	if report.Accepted == 0 {
		h.Log.Info("batch accepted no points", zap.Int("total", report.Total), zap.Int("skipped", report.Skipped()))
		writeJSON(w, http.StatusOK, journeyResponse{
			Outcome: outcomeNoLocationData,
			Message: journey.ErrNoLocationData.Error(),
			Points:  []model.RenderPoint{},
			Report:  &report,
		})
		return
	}

	stats := journey.ComputeStatistics(j)

	if h.Archive != nil {
		if _, err := h.Archive.SaveJourney(j, stats); err != nil {
			// Archiving is best effort; the committed journey is already live.
			h.Log.Warn("failed to archive journey", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, journeyResponse{
		Outcome: outcomeOK,
		Points:  renderPoints(j, stored),
		Stats:   stats,
		Share:   journey.ShareSummary(stats, h.Policy),
		Report:  &report,
	})
}

// collectSources buffers each upload, saves the blob and prepares the
// extraction closure the assembler will call. Files that cannot even be
// read still produce a source whose extraction fails, so they are counted
// as skipped items rather than aborting the batch.
func (h *JourneyHandlers) collectSources(ctx context.Context, fileHeaders []*multipart.FileHeader) ([]journey.Source, map[string]model.StoredPhoto) {
	sources := make([]journey.Source, 0, len(fileHeaders))
	stored := make(map[string]model.StoredPhoto, len(fileHeaders))

	for _, fh := range fileHeaders {
		modTime := fallbackModTime(fh)

		data, err := readUpload(fh)
		if err != nil {
			sources = append(sources, journey.Source{
				Ref:     fh.Filename,
				ModTime: modTime,
				Extract: func() (journey.Record, error) { return nil, err },
			})
			continue
		}

		sp, err := h.Storage.Save(ctx, fh.Filename, fh.Header.Get("Content-Type"), data)
		if err != nil {
			h.Log.Warn("failed to store photo blob", zap.String("photo", fh.Filename), zap.Error(err))
		} else {
			stored[fh.Filename] = sp
		}

		sources = append(sources, journey.Source{
			Ref:     fh.Filename,
			ModTime: modTime,
			Extract: func() (journey.Record, error) { return exifmeta.ExtractBytes(data) },
		})
	}

	return sources, stored
}

// fallbackModTime reads the per-part Last-Modified header upload clients
// send; absent that, receipt time stands in for the file time.
func fallbackModTime(fh *multipart.FileHeader) time.Time {
	if v := fh.Header.Get("Last-Modified"); v != "" {
		if t, err := http.ParseTime(v); err == nil {
			return t
		}
	}
	return time.Now()
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func renderPoints(j model.Journey, stored map[string]model.StoredPhoto) []model.RenderPoint {
	out := make([]model.RenderPoint, len(j.Points))
	for i, p := range j.Points {
		rp := model.RenderPoint{
			Point:     p.Point,
			Date:      p.CapturedAt.Format("Jan 2, 2006"),
			SourceRef: p.SourceRef,
		}
		if sp, ok := stored[p.SourceRef]; ok {
			rp.Thumbnail = sp.ThumbnailPath
		}
		out[i] = rp
	}
	return out
}

func (h *JourneyHandlers) handleGetJourney(w http.ResponseWriter, r *http.Request) {
	j, ok := h.Session.Current()
	if !ok || len(j.Points) == 0 {
		writeJSON(w, http.StatusOK, journeyResponse{
			Outcome: outcomeNoLocationData,
			Points:  []model.RenderPoint{},
		})
		return
	}

	stats := journey.ComputeStatistics(j)
	writeJSON(w, http.StatusOK, journeyResponse{
		Outcome: outcomeOK,
		Points:  renderPoints(j, nil),
		Stats:   stats,
		Share:   journey.ShareSummary(stats, h.Policy),
	})
}

func (h *JourneyHandlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		writeJSON(w, http.StatusOK, []storage.ArchivedJourney{})
		return
	}

	history, err := h.Archive.History(20)
	if err != nil {
		h.Log.Error("failed to load journey history", zap.Error(err))
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []storage.ArchivedJourney{}
	}
	writeJSON(w, http.StatusOK, history)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
