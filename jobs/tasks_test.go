package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialsEmailTask(t *testing.T) {
	task, err := NewCredentialsEmailTask(CredentialsEmailPayload{
		To:       "new@proven.local",
		FullName: "New User",
		Password: "s3cret",
		Role:     "Project Officer",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeCredentialsEmail, task.Type())

	var payload CredentialsEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "new@proven.local", payload.To)
	assert.Equal(t, "s3cret", payload.Password)
}

func TestNewNotificationFanoutTask(t *testing.T) {
	task, err := NewNotificationFanoutTask(NotificationFanoutPayload{
		Recipients: []string{"u-1", "u-2"},
		Title:      "Project created",
		Body:       "Harbour Upgrade",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeNotificationFanout, task.Type())

	var payload NotificationFanoutPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, []string{"u-1", "u-2"}, payload.Recipients)
}

type failEnqueuer struct{}

func (failEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return nil, errors.New("redis down")
}

func TestEnqueueCredentialsEmailWrapsError(t *testing.T) {
	err := EnqueueCredentialsEmail(failEnqueuer{}, CredentialsEmailPayload{To: "x@proven.local"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue credentials email")
}

func TestHandleCredentialsEmailBadPayloadSkipsRetry(t *testing.T) {
	m := &Mailer{}
	task := asynq.NewTask(TaskTypeCredentialsEmail, []byte("{not json"))
	err := m.HandleCredentialsEmail(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleNotificationFanoutBadPayloadSkipsRetry(t *testing.T) {
	f := &Fanout{}
	task := asynq.NewTask(TaskTypeNotificationFanout, []byte("{not json"))
	err := f.HandleNotificationFanout(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
