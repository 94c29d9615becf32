// Package api serves the codebook, enrichment and stored records over HTTP.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/codebook"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/db"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/enrich"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/logging"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/metrics"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

// MaxBlobSize bounds the body of POST /enrich.
const MaxBlobSize = 1 << 20

// Handler wires the read-only endpoints to the codebook and, when set, the
// record store.
type Handler struct {
	codebook *codebook.Codebook
	db       *sql.DB
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// New constructs a handler. conn may be nil, which disables the record
// endpoints; m may be nil.
func New(cb *codebook.Codebook, conn *sql.DB, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{codebook: cb, db: conn, metrics: m, logger: logging.OrNop(logger)}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/codebook", h.HandleCodebook)
	r.Get("/codebook/variables", h.HandleVariables)
	r.Get("/codebook/variables/{variable}", h.HandleVariable)
	r.Get("/codebook/dictionaries/{id}", h.HandleDictionary)
	r.Post("/enrich", h.HandleEnrich)
	r.Get("/schema/{kind}", h.HandleSchema)
	if h.db != nil {
		r.Get("/events/{id}", h.HandleEvent)
		r.Get("/runs/{id}", h.HandleRun)
		r.Get("/runs/{id}/rejections", h.HandleRejections)
	}
}

// NewRouter builds the full router, with /metrics served from gatherer.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	h.Register(r)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// NewServer builds an HTTP server with the project's timeouts.
func NewServer(addr string, handler http.Handler, readHeaderTimeout time.Duration) *http.Server {
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 5 * time.Second
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type codebookResponse struct {
	Variables    int                        `json:"variables"`
	Skipped      int                        `json:"skipped"`
	Dictionaries []codebook.DictionaryCount `json:"dictionaries"`
}

// HandleCodebook handles GET /codebook.
func (h *Handler) HandleCodebook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, codebookResponse{
		Variables:    h.codebook.Count(),
		Skipped:      h.codebook.Skipped(),
		Dictionaries: h.codebook.SortedStats(),
	})
}

// HandleVariables handles GET /codebook/variables?limit=N.
func (h *Handler) HandleVariables(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, h.codebook.ListVariables(limit))
}

// HandleVariable handles GET /codebook/variables/{variable}.
func (h *Handler) HandleVariable(w http.ResponseWriter, r *http.Request) {
	v := chi.URLParam(r, "variable")
	e, ok := h.codebook.GetByVariable(v)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown variable "+strconv.Quote(v))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// HandleDictionary handles GET /codebook/dictionaries/{id}.
func (h *Handler) HandleDictionary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "dictionary id must be an unsigned integer")
		return
	}
	entries := h.codebook.GetByDictionaryID(uint32(id))
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "unknown dictionary id "+strconv.FormatUint(id, 10))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type enrichResponse struct {
	enrich.Result
	Coverage enrich.Coverage `json:"coverage"`
}

// HandleEnrich handles POST /enrich. The body is a raw GCAM blob.
func (h *Handler) HandleEnrich(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBlobSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "blob too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	res := enrich.Enrich(h.codebook, string(body))
	h.metrics.ObserveGCAM(res.Hits, res.Misses, res.Skipped)
	h.logger.Debug("blob enriched", zap.Int("measurements", len(res.Measurements)), zap.Int("misses", res.Misses))
	writeJSON(w, http.StatusOK, enrichResponse{Result: res, Coverage: res.Coverage()})
}

// HandleSchema handles GET /schema/{kind}.
func (h *Handler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	k, err := record.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, record.Columns(k))
}

// HandleEvent handles GET /events/{id}.
func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "event id must be an integer")
		return
	}
	ev, err := db.GetEvent(h.db, id)
	if err != nil {
		h.storeError(w, "event", err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type runResponse struct {
	ID           string       `json:"id"`
	SourceFileID int64        `json:"source_file_id"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
	Counts       db.RunCounts `json:"counts"`
	Error        string       `json:"error,omitempty"`
}

// HandleRun handles GET /runs/{id}.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	run, err := db.GetRun(h.db, chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "run", err)
		return
	}
	writeJSON(w, http.StatusOK, runResponse{
		ID:           run.ID,
		SourceFileID: run.SourceFileID,
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
		Counts:       run.Counts,
		Error:        run.Error,
	})
}

// HandleRejections handles GET /runs/{id}/rejections.
func (h *Handler) HandleRejections(w http.ResponseWriter, r *http.Request) {
	out, err := db.ListRejections(h.db, chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "rejections", err)
		return
	}
	if out == nil {
		out = []db.Rejection{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) storeError(w http.ResponseWriter, what string, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, what+" not found")
		return
	}
	h.logger.Error("store read failed", zap.String("what", what), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
