package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	metrics "github.com/rcrowley/go-metrics"
)

// RequestIDHeader carries the id used to correlate a request with its log lines
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records latency, request and error counts for a route
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	latency := metrics.GetOrRegisterTimer("api."+route+".latency", s.registry)
	requests := metrics.GetOrRegisterCounter("api."+route+".requests", s.registry)
	failures := metrics.GetOrRegisterCounter("api."+route+".errors", s.registry)

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		latency.UpdateSince(start)
		requests.Inc(1)
		if rec.status >= http.StatusBadRequest {
			failures.Inc(1)
		}
		s.logger.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, rec.status, time.Since(start), requestID)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	metrics.WriteJSONOnce(s.registry, w)
}
