// Package notifier drains the event outbox produced by workflow operations.
// Delivery channels (push, email) are owned by a separate system; this
// collaborator records each event on the structured log so deliveries can be
// replayed from log aggregation.
package notifier

import (
	"context"
	"log/slog"

	"github.com/siteworks/siteops-backend-go/internal/domain/event"
)

type Notifier struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Dispatch is called after the producing operation has committed; events for
// uncommitted work must never reach it.
func (n *Notifier) Dispatch(ctx context.Context, events []event.Event) {
	for _, e := range events {
		n.logger.InfoContext(ctx, "notification event",
			slog.String("event_id", e.ID),
			slog.String("type", string(e.Type)),
			slog.String("audience", string(e.Audience)),
			slog.String("recipient_id", e.RecipientID),
			slog.String("request_id", e.RequestID),
			slog.String("project_id", e.ProjectID),
			slog.String("message", e.Message),
			slog.Time("occurred_at", e.OccurredAt),
		)
	}
}
