package services

import (
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/SscSPs/plan_approval_app/internal/storage"
)

// Collaborators are the adapters the services call out to.
type Collaborators struct {
	Files     storage.FileStorage
	Generator portssvc.DocumentGeneratorSvc
	Transport portssvc.MessageTransport
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Plan = NewPlanService(repos.PlanRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Audit = NewAuditService(repos.PlanRepo, repos.AuditRepo, collab.Files)

	// The notification bridge gets its switches from config, never from global state
	container.Notifier = NewNotificationService(cfg.Notification, repos.UserRepo, repos.MessageRepo, collab.Transport)

	container.Workflow = NewWorkflowService(
		repos.PlanRepo,
		WithDocumentGenerator(collab.Generator, cfg.Documents),
		WithNotifier(container.Notifier, cfg.Notification),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PlanSvcFacade  = (*planService)(nil)
	_ portssvc.WorkflowSvc    = (*workflowService)(nil)
	_ portssvc.AuditSvc       = (*auditService)(nil)
	_ portssvc.NotifierSvc    = (*notificationService)(nil)
	_ portssvc.UserSvcFacade  = (*userService)(nil)
	_ portssvc.TokenSvcFacade = (*tokenService)(nil)
)
