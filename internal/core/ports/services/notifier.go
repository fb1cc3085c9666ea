package services

import (
	"context"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
)

// NotificationSink receives user-facing notification events from the engine.
// Delivery is fire-and-forget: implementations may drop events and must never
// fail an engine operation.
type NotificationSink interface {
	Notify(ctx context.Context, n domain.Notification)
}
