// Package demoapi serves a stand-in for the recommendation engine's analytics API.
package demoapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Options tunes the demo server.
type Options struct {
	// Fail makes the listed endpoints answer 500.
	Fail map[analytics.Endpoint]bool
	// Delay is added before every analytics response.
	Delay time.Duration
	// Now is the clock used for health timestamps.
	Now func() time.Time
}

// Server answers the four analytics endpoints from a fixed dataset.
type Server struct {
	data Dataset
	opts Options
}

// NewServer creates a demo server over data.
func NewServer(data Dataset, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Fail == nil {
		opts.Fail = make(map[analytics.Endpoint]bool)
	}
	return &Server{data: data, opts: opts}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/summary", s.analytics(analytics.EndpointSummary, func() any { return s.data.Summary }))
		r.Get("/recent-recommendations", s.analytics(analytics.EndpointRecentRecommendations, func() any { return s.data.Recommendations }))
		r.Get("/category-distribution", s.analytics(analytics.EndpointCategoryDistribution, func() any { return s.data.Categories }))
		r.Get("/weekly-engagement", s.analytics(analytics.EndpointWeeklyEngagement, func() any { return s.data.Engagement }))
	})

	return r
}

type healthResponse struct {
	Status    string  `json:"status"`
	Version   string  `json:"version"`
	Timestamp float64 `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	now := s.opts.Now()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: float64(now.UnixNano()) / float64(time.Second),
	})
}

func (s *Server) analytics(endpoint analytics.Endpoint, payload func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Delay > 0 {
			select {
			case <-time.After(s.opts.Delay):
			case <-r.Context().Done():
				return
			}
		}

		if s.opts.Fail[endpoint] {
			writeError(w, http.StatusInternalServerError, "simulated failure")
			return
		}

		writeJSON(w, http.StatusOK, payload())
	}
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Debug("Demo API request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}
