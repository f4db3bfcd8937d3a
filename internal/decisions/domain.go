package decisions

import "time"

// Status enumerates decision states.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Priority enumerates decision urgency.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Decision is a governance decision raised against a project: it stays
// pending until an approver rules on it.
type Decision struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Impact      string     `json:"impact,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueOn       *time.Time `json:"due_on,omitempty"`
	RaisedBy    string     `json:"raised_by"`
	DecidedBy   string     `json:"decided_by,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
