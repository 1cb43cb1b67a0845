package controllers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	approvalsAPIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "approvals",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total number of approvals API requests broken down by endpoint and result.",
	}, []string{"endpoint", "result"})

	approvalsAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "approvals",
		Subsystem: "api",
		Name:      "latency_seconds",
		Help:      "Latency distribution for approvals API requests.",
		Buckets: []float64{
			0.001, 0.002, 0.005,
			0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5,
		},
	}, []string{"endpoint", "result"})

	approvalsDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "approvals",
		Subsystem: "workflow",
		Name:      "decisions_total",
		Help:      "Total number of workflow decisions broken down by role and outcome.",
	}, []string{"role", "decision"})
)

type statusRecordingResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecordingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecordingResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecordingResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func instrumentAPI(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecordingResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		result := "2xx"
		switch {
		case rec.status >= 500:
			result = "5xx"
		case rec.status >= 400:
			result = "4xx"
		}

		approvalsAPIRequests.WithLabelValues(endpoint, result).Inc()
		approvalsAPILatency.WithLabelValues(endpoint, result).Observe(time.Since(start).Seconds())
	}
}
