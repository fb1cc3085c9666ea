package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/middleware"
)

// EscalationSweeper periodically re-evaluates escalation levels for every
// pending file. The sweep is idempotent, so overlapping triggers (timer plus
// the on-demand endpoint) are safe.
type EscalationSweeper struct {
	workflow portssvc.WorkflowEscalationSvc
	logger   *slog.Logger
	interval time.Duration
}

// NewEscalationSweeper creates a sweeper that runs at the given interval.
func NewEscalationSweeper(workflow portssvc.WorkflowEscalationSvc, logger *slog.Logger, interval time.Duration) *EscalationSweeper {
	return &EscalationSweeper{
		workflow: workflow,
		logger:   logger,
		interval: interval,
	}
}

// Run blocks until the context is cancelled, sweeping once immediately and
// then on every tick.
func (s *EscalationSweeper) Run(ctx context.Context) {
	ctx = middleware.ContextWithLogger(ctx, s.logger)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Escalation sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *EscalationSweeper) sweep(ctx context.Context) {
	escalated, err := s.workflow.RecomputeEscalations(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("Escalation sweep failed", slog.String("error", err.Error()))
		return
	}
	if escalated > 0 {
		s.logger.Info("Escalation sweep completed", slog.Int("files_escalated", escalated))
	}
}
