package actions

import "time"

// Status enumerates action item states.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Action is a tracked follow-up item, usually raised in a meeting and
// assigned against a project.
type Action struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id,omitempty"`
	Title      string     `json:"title"`
	AssigneeID string     `json:"assignee_id,omitempty"`
	Status     Status     `json:"status"`
	DueOn      *time.Time `json:"due_on,omitempty"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
}
