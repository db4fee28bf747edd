// Package metrics provides the Prometheus registry reference for the product
// advertising client. Metrics are defined in their respective packages (api,
// ratelimit) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective
// packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/api):
//   - apa_requests_total{operation, status} (Counter): Requests by operation and HTTP status
//   - apa_request_duration_seconds{operation} (Histogram): Request duration by operation
//   - apa_service_errors_total{code} (Counter): Service errors by error code
//
// Throttle Metrics (pkg/ratelimit):
//   - apa_throttle_waits_total (Counter): Calls delayed by the client-side rate limit
//   - apa_throttle_wait_seconds (Histogram): Time spent waiting on the rate limit
//
// Example Prometheus Queries:
//
//   # Service Error Rate
//   rate(apa_service_errors_total[5m]) / rate(apa_requests_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(apa_request_duration_seconds_bucket[5m]))
//
//   # Share of Throttled Calls
//   rate(apa_throttle_waits_total[5m]) / rate(apa_requests_total[5m])
