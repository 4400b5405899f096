package model

// AlertSeverity classifies a budget alert.
type AlertSeverity string

const (
	AlertDanger  AlertSeverity = "danger"
	AlertWarning AlertSeverity = "warning"
	AlertInfo    AlertSeverity = "info"
)

// BudgetAlert is a transient alert about budget consumption.
// Alerts are recomputed on every request and never persisted.
type BudgetAlert struct {
	Category string        `json:"category"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}
