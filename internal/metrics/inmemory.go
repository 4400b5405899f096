package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered      uint64
	LoginsSucceeded      uint64
	LoginsFailed         uint64
	ExpensesCreated      uint64
	ExpensesUpdated      uint64
	ExpensesDeleted      uint64
	AlertsBySeverity     map[string]uint64
	QuoteCacheHits       uint64
	QuoteCacheMisses     uint64
	QuoteFetchCount      uint64
	QuoteFetchTotalNs    int64
	AdviceRequestsByKind map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered   uint64
	loginsSucceeded   uint64
	loginsFailed      uint64
	expensesCreated   uint64
	expensesUpdated   uint64
	expensesDeleted   uint64
	quoteCacheHits    uint64
	quoteCacheMisses  uint64
	quoteFetchCount   uint64
	quoteFetchTotalNs int64

	mu             sync.Mutex
	alerts         map[string]uint64
	adviceRequests map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		alerts:         make(map[string]uint64),
		adviceRequests: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	alerts := make(map[string]uint64, len(m.alerts))
	for k, v := range m.alerts {
		alerts[k] = v
	}
	advice := make(map[string]uint64, len(m.adviceRequests))
	for k, v := range m.adviceRequests {
		advice[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		UsersRegistered:      atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded:      atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:         atomic.LoadUint64(&m.loginsFailed),
		ExpensesCreated:      atomic.LoadUint64(&m.expensesCreated),
		ExpensesUpdated:      atomic.LoadUint64(&m.expensesUpdated),
		ExpensesDeleted:      atomic.LoadUint64(&m.expensesDeleted),
		AlertsBySeverity:     alerts,
		QuoteCacheHits:       atomic.LoadUint64(&m.quoteCacheHits),
		QuoteCacheMisses:     atomic.LoadUint64(&m.quoteCacheMisses),
		QuoteFetchCount:      atomic.LoadUint64(&m.quoteFetchCount),
		QuoteFetchTotalNs:    atomic.LoadInt64(&m.quoteFetchTotalNs),
		AdviceRequestsByKind: advice,
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSucceeded increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSucceeded() {
	atomic.AddUint64(&m.loginsSucceeded, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncExpenseCreated increments the expense creation counter.
func (m *InMemoryRecorder) IncExpenseCreated() {
	atomic.AddUint64(&m.expensesCreated, 1)
}

// IncExpenseUpdated increments the expense update counter.
func (m *InMemoryRecorder) IncExpenseUpdated() {
	atomic.AddUint64(&m.expensesUpdated, 1)
}

// IncExpenseDeleted increments the expense deletion counter.
func (m *InMemoryRecorder) IncExpenseDeleted() {
	atomic.AddUint64(&m.expensesDeleted, 1)
}

// IncBudgetAlertEmitted increments the per-severity alert counter.
func (m *InMemoryRecorder) IncBudgetAlertEmitted(severity string) {
	m.mu.Lock()
	m.alerts[severity]++
	m.mu.Unlock()
}

// IncQuoteCacheHit increments the quote cache hit counter.
func (m *InMemoryRecorder) IncQuoteCacheHit() {
	atomic.AddUint64(&m.quoteCacheHits, 1)
}

// IncQuoteCacheMiss increments the quote cache miss counter.
func (m *InMemoryRecorder) IncQuoteCacheMiss() {
	atomic.AddUint64(&m.quoteCacheMisses, 1)
}

// ObserveQuoteFetchDuration records an upstream quote fetch duration.
func (m *InMemoryRecorder) ObserveQuoteFetchDuration(duration time.Duration) {
	atomic.AddUint64(&m.quoteFetchCount, 1)
	atomic.AddInt64(&m.quoteFetchTotalNs, duration.Nanoseconds())
}

// IncAdviceRequested increments the per-kind advice counter.
func (m *InMemoryRecorder) IncAdviceRequested(kind string) {
	m.mu.Lock()
	m.adviceRequests[kind]++
	m.mu.Unlock()
}
