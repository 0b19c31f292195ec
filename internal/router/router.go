package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/streamcast/recommendation-service/internal/handler"
	"github.com/streamcast/recommendation-service/internal/logging"
	"github.com/streamcast/recommendation-service/internal/metrics"
)

func Setup(h *handler.Handler, logger zerolog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(countRequests)

	r.Get("/users/{userID}/recommendations", h.GetRecommendations)
	r.Post("/users/{userID}/watch-history", h.AddWatchHistory)
	r.Put("/users/{userID}/ratings/{contentID}", h.RateContent)
	r.Get("/content/{contentID}/similar", h.GetSimilarContent)
	r.Get("/trending", h.GetTrending)
	r.Get("/recommendations/batch", h.GetBatchRecommendations)
	r.Get("/health", healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// countRequests increments the Prometheus request counter with the
// chi route pattern so counters don't explode per-ID.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
