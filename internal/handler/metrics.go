package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/finintel/finintel/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "finintel_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "finintel_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "finintel_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)

	writeMetric(w, "finintel_expenses_created_total %d\n", snap.ExpensesCreated)
	writeMetric(w, "finintel_expenses_updated_total %d\n", snap.ExpensesUpdated)
	writeMetric(w, "finintel_expenses_deleted_total %d\n", snap.ExpensesDeleted)

	for _, severity := range sortedKeys(snap.AlertsBySeverity) {
		writeMetric(w, "finintel_budget_alerts_total{severity=%q} %d\n", severity, snap.AlertsBySeverity[severity])
	}

	writeMetric(w, "finintel_quote_cache_hits_total %d\n", snap.QuoteCacheHits)
	writeMetric(w, "finintel_quote_cache_misses_total %d\n", snap.QuoteCacheMisses)
	writeMetric(w, "finintel_quote_fetch_duration_seconds_count %d\n", snap.QuoteFetchCount)
	writeMetric(w, "finintel_quote_fetch_duration_seconds_sum %.6f\n", float64(snap.QuoteFetchTotalNs)/1e9)

	for _, kind := range sortedKeys(snap.AdviceRequestsByKind) {
		writeMetric(w, "finintel_advice_requests_total{kind=%q} %d\n", kind, snap.AdviceRequestsByKind[kind])
	}
}

func sortedKeys(m map[string]uint64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
