package services

import (
	"context"
	"log/slog"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
)

// slogNotifier is a notification sink that records events on the structured
// log. The engine treats the sink as fire-and-forget, so a logging sink is a
// correct minimal delivery; a real deployment can swap in a push channel
// behind the same port.
type slogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a NotificationSink backed by the given logger.
func NewSlogNotifier(logger *slog.Logger) portssvc.NotificationSink {
	return &slogNotifier{logger: logger}
}

var _ portssvc.NotificationSink = (*slogNotifier)(nil)

func (n *slogNotifier) Notify(_ context.Context, event domain.Notification) {
	n.logger.Info("notification",
		slog.String("kind", string(event.Kind)),
		slog.String("title", event.Title),
		slog.String("message", event.Message),
	)
}
