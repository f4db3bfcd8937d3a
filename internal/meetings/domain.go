package meetings

import "time"

// Status enumerates meeting states.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Meeting is a scheduled governance session. Agendas and minutes live
// in the documents module; AgendaReady only flags that one exists.
type Meeting struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id,omitempty"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Attendees   int       `json:"attendees"`
	Status      Status    `json:"status"`
	AgendaReady bool      `json:"agenda_ready"`
	OrganisedBy string    `json:"organised_by"`
	CreatedAt   time.Time `json:"created_at"`
}
