package server

import (
	"fmt"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
)

// Request counters, exposed on the optional scrape endpoint.
var (
	echoRequestsTotal = metrics.NewCounter(`echocalc_requests_total{service="echo"}`)
	echoErrorsTotal   = metrics.NewCounter(`echocalc_request_errors_total{service="echo"}`)
	calcErrorsTotal   = metrics.NewCounter(`echocalc_request_errors_total{service="calculator"}`)
	decodeErrorsTotal = metrics.NewCounter(`echocalc_decode_errors_total`)
)

// calcRequestsTotal returns the per-operation counter for successful
// calculator requests
func calcRequestsTotal(op fmt.Stringer) *metrics.Counter {
	return metrics.GetOrCreateCounter(
		fmt.Sprintf(`echocalc_requests_total{service="calculator",op=%q}`, op.String()),
	)
}

// newMetricsServer creates an HTTP server exposing the counters in
// Prometheus text format under /metrics
func newMetricsServer(endpoint string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	return &http.Server{Addr: endpoint, Handler: mux}
}
