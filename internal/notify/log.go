package notify

import (
	"context"
	"log/slog"

	"github.com/brookfield/admissions/internal/domain/application"
)

// LogDispatcher writes status messages to the log instead of sending email.
// Used in development and wherever SES is not configured.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a log-only dispatcher.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Send logs the rendered message.
func (d *LogDispatcher) Send(_ context.Context, app *application.Application, newStatus application.Status) error {
	subject, body := Render(app, newStatus)
	if d.logger != nil {
		d.logger.Info("notification (log only)",
			"application_id", app.ID,
			"status", newStatus,
			"subject", subject,
			"body", body,
		)
	}
	return nil
}
