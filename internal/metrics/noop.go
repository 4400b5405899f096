package metrics

import "time"

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (NoopRecorder) IncUserRegistered()                             {}
func (NoopRecorder) IncLoginSucceeded()                             {}
func (NoopRecorder) IncLoginFailed()                                {}
func (NoopRecorder) IncExpenseCreated()                             {}
func (NoopRecorder) IncExpenseUpdated()                             {}
func (NoopRecorder) IncExpenseDeleted()                             {}
func (NoopRecorder) IncBudgetAlertEmitted(string)                   {}
func (NoopRecorder) IncQuoteCacheHit()                              {}
func (NoopRecorder) IncQuoteCacheMiss()                             {}
func (NoopRecorder) ObserveQuoteFetchDuration(time.Duration)        {}
func (NoopRecorder) IncAdviceRequested(string)                      {}
