package services

import (
	"log/slog"

	portsrepo "github.com/dealdesk/deal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Notifier = NewSlogNotifier(logger)
	container.Workflow = NewWorkflowService(repos.FileRepo, container.Notifier)
	container.User = NewUserService(repos.UserRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.WorkflowSvcFacade    = (*workflowService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)
)
