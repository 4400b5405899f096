// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account events
	IncUserRegistered()
	IncLoginSucceeded()
	IncLoginFailed()

	// Expense management
	IncExpenseCreated()
	IncExpenseUpdated()
	IncExpenseDeleted()

	// Budget alerts
	IncBudgetAlertEmitted(severity string) // severity: "danger", "warning", "info"

	// Quote fetching
	IncQuoteCacheHit()
	IncQuoteCacheMiss()
	ObserveQuoteFetchDuration(duration time.Duration)

	// Advice requests
	IncAdviceRequested(kind string) // kind: "advice" or "chat"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
