package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"channel_ranker/internal/domain"
)

type Rankings interface {
	PeriodDelta(ctx context.Context, start, end time.Time) (*domain.DeltaRanking, error)
	ContentPeriodAggregate(ctx context.Context, start, end time.Time) (*domain.ContentRanking, error)
	GrowthSeries(ctx context.Context, channelID string, from, to time.Time) ([]domain.SeriesPoint, error)
	SnapshotCoverage(ctx context.Context) ([]domain.CoverageDay, error)
	GlobalRanking(ctx context.Context, limit, offset int, search string) (*domain.GlobalRanking, error)
	ChannelDetails(ctx context.Context, channelID string) (*domain.ChannelDetails, error)
}

type Auditor interface {
	Audit(ctx context.Context, ref string, date time.Time) (*domain.AuditReport, error)
}

type Collections interface {
	Collect(ctx context.Context, ref string, mode domain.Mode) (*domain.CollectionResult, error)
	DeleteChannel(ctx context.Context, channelID string) (*domain.DeleteResult, error)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	rankings       Rankings
	auditor        Auditor
	collections    Collections
	checks         map[string]HealthCheck
	collectTimeout time.Duration
	logger         *slog.Logger
}

func NewHandler(rankings Rankings, auditor Auditor, collections Collections, checks map[string]HealthCheck, collectTimeout time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		rankings:       rankings,
		auditor:        auditor,
		collections:    collections,
		checks:         checks,
		collectTimeout: collectTimeout,
		logger:         logger.With("component", "api"),
	}
}

func (h *Handler) HandleDeltaRanking(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r, "start", "end")
	if !ok {
		return
	}

	ranking, err := h.rankings.PeriodDelta(r.Context(), start, end)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"ranking": ranking})
}

func (h *Handler) HandleContentRanking(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r, "start", "end")
	if !ok {
		return
	}

	ranking, err := h.rankings.ContentPeriodAggregate(r.Context(), start, end)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"ranking": ranking})
}

func (h *Handler) HandleGlobalRanking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, ok := h.intParam(w, q.Get("limit"), "limit")
	if !ok {
		return
	}
	offset, ok := h.intParam(w, q.Get("offset"), "offset")
	if !ok {
		return
	}

	ranking, err := h.rankings.GlobalRanking(r.Context(), limit, offset, q.Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"ranking": ranking})
}

func (h *Handler) HandleChannelDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.rankings.ChannelDetails(r.Context(), chi.URLParam(r, "channel"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"channel": details})
}

func (h *Handler) HandleCoverage(w http.ResponseWriter, r *http.Request) {
	days, err := h.rankings.SnapshotCoverage(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"coverage": days})
}

func (h *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.period(w, r, "from", "to")
	if !ok {
		return
	}

	channelID := chi.URLParam(r, "channel")
	points, err := h.rankings.GrowthSeries(r.Context(), channelID, from, to)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"channel_id": channelID, "series": points})
}

func (h *Handler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, Envelope{"error": err.Error()})
			return
		}
		date = d
	}

	report, err := h.auditor.Audit(r.Context(), chi.URLParam(r, "channel"), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"audit": report})
}

// HandleCollect runs one collection synchronously. The cycle outlives a
// disconnecting client so a started snapshot is not thrown away.
func (h *Handler) HandleCollect(w http.ResponseWriter, r *http.Request) {
	mode, err := domain.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Envelope{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.collectTimeout)
	defer cancel()

	result, err := h.collections.Collect(ctx, chi.URLParam(r, "channel"), mode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"result": result})
}

func (h *Handler) HandleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	result, err := h.collections.DeleteChannel(r.Context(), chi.URLParam(r, "channel"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{"deleted": result})
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("health check failed", "check", name, "error", err)
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	WriteJSON(w, status, Envelope{"status": http.StatusText(status), "checks": results})
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request, fromKey, toKey string) (time.Time, time.Time, bool) {
	q := r.URL.Query()
	if q.Get(fromKey) == "" || q.Get(toKey) == "" {
		WriteJSON(w, http.StatusBadRequest, Envelope{"error": fromKey + " and " + toKey + " are required"})
		return time.Time{}, time.Time{}, false
	}

	from, err := domain.ParseDate(q.Get(fromKey))
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Envelope{"error": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	to, err := domain.ParseDate(q.Get(toKey))
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Envelope{"error": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// intParam parses an optional non-negative integer query value; empty is 0.
func (h *Handler) intParam(w http.ResponseWriter, value, name string) (int, bool) {
	if value == "" {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		WriteJSON(w, http.StatusBadRequest, Envelope{"error": name + " must be a non-negative integer"})
		return 0, false
	}
	return n, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		WriteJSON(w, status, Envelope{"error": http.StatusText(status)})
		return
	}
	WriteJSON(w, status, Envelope{"error": err.Error()})
}
