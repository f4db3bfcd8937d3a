package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fanout writes notification rows for each recipient of a task.
type Fanout struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
}

// HandleNotificationFanout processes TaskTypeNotificationFanout tasks.
// A failing insert for one recipient does not abort the rest; the task
// is retried only when every insert failed.
func (f *Fanout) HandleNotificationFanout(ctx context.Context, t *asynq.Task) error {
	var payload NotificationFanoutPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if len(payload.Recipients) == 0 {
		return nil
	}

	var delivered int
	for _, userID := range payload.Recipients {
		_, err := f.Pool.Exec(ctx, `INSERT INTO notifications (user_id, title, body, link, is_read, created_at) VALUES ($1, $2, $3, NULLIF($4, ''), FALSE, NOW())`, userID, payload.Title, payload.Body, payload.Link)
		if err != nil {
			if f.Logger != nil {
				f.Logger.Warn("notification insert failed", slog.String("user", userID), slog.Any("error", err))
			}
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return errors.New("jobs: notification fanout delivered nothing")
	}
	return nil
}
