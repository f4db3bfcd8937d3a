package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"
)

// Mailer delivers transactional email over SMTP.
type Mailer struct {
	Host   string
	Port   int
	From   string
	Logger *slog.Logger
}

// Send delivers a plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n\r\n", subject)
	msg.WriteString(body)
	return smtp.SendMail(addr, nil, m.From, []string{to}, []byte(msg.String()))
}

// HandleCredentialsEmail processes TaskTypeCredentialsEmail tasks.
func (m *Mailer) HandleCredentialsEmail(ctx context.Context, t *asynq.Task) error {
	var payload CredentialsEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	body := fmt.Sprintf(`Hello %s,

Your account on the PROVEN platform has been created by the system administrator.

  Email:    %s
  Password: %s
  Role:     %s

Please change your password immediately after your first login and do not
share your credentials with anyone.

Best regards,
PROVEN Platform Team
`, payload.FullName, payload.To, payload.Password, payload.Role)

	if err := m.Send(payload.To, "Welcome to the PROVEN Platform - Your Account Credentials", body); err != nil {
		if m.Logger != nil {
			m.Logger.Warn("credentials email failed", slog.String("to", payload.To), slog.Any("error", err))
		}
		return err
	}
	return nil
}
