package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestObserver records request durations by route pattern.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, d time.Duration)
}

func NewRouter(h *Handler, observer RequestObserver, gatherer prometheus.Gatherer, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger, observer))

	r.Get("/health", h.HandleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/rankings", func(r chi.Router) {
			r.Get("/delta", h.HandleDeltaRanking)
			r.Get("/content", h.HandleContentRanking)
			r.Get("/global", h.HandleGlobalRanking)
		})

		r.Get("/snapshots/coverage", h.HandleCoverage)

		r.Route("/channels", func(r chi.Router) {
			r.Get("/{channel}/audit", h.HandleAudit)
			r.Post("/{channel}/collect", h.HandleCollect)
			r.Get("/{channel}/series", h.HandleSeries)
			r.Get("/{channel}", h.HandleChannelDetails)
			r.Delete("/{channel}", h.HandleDeleteChannel)
		})
	})

	return r
}

func requestLogger(logger *slog.Logger, observer RequestObserver) func(http.Handler) http.Handler {
	logger = logger.With("component", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			if observer != nil {
				observer.ObserveRequest(route, r.Method, ww.Status(), duration)
			}

			logger.Debug("request served",
				"method", r.Method,
				"route", route,
				"status", ww.Status(),
				"duration", duration,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
