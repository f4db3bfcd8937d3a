package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeCredentialsEmail delivers generated credentials to a
	// freshly provisioned user.
	TaskTypeCredentialsEmail = "mail:credentials"
	// TaskTypeNotificationFanout writes a notification row for every
	// recipient of a governance event.
	TaskTypeNotificationFanout = "notify:fanout"
)

// CredentialsEmailPayload carries everything the mailer needs.
type CredentialsEmailPayload struct {
	To       string `json:"to"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// NewCredentialsEmailTask constructs an Asynq task.
func NewCredentialsEmailTask(payload CredentialsEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeCredentialsEmail, data, asynq.MaxRetry(5), asynq.Queue(QueueDefault)), nil
}

// NotificationFanoutPayload describes a notification to fan out.
type NotificationFanoutPayload struct {
	Recipients []string `json:"recipients"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Link       string   `json:"link,omitempty"`
}

// NewNotificationFanoutTask constructs an Asynq task.
func NewNotificationFanoutTask(payload NotificationFanoutPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeNotificationFanout, data, asynq.Queue(QueueDefault)), nil
}

// Enqueuer is the slice of asynq.Client the services need.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EnqueueCredentialsEmail queues a credentials email for delivery.
func EnqueueCredentialsEmail(client Enqueuer, payload CredentialsEmailPayload) error {
	task, err := NewCredentialsEmailTask(payload)
	if err != nil {
		return err
	}
	if _, err := client.Enqueue(task); err != nil {
		return fmt.Errorf("jobs: enqueue credentials email: %w", err)
	}
	return nil
}

var _ Enqueuer = (*asynq.Client)(nil)
