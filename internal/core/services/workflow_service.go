package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/core/workflow"
	"github.com/SscSPs/plan_approval_app/internal/metrics"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/google/uuid"
)

// workflowService is the engine that validates and commits transitions
type workflowService struct {
	BaseService
	table     *workflow.Table
	planRepo  portsrepo.PlanRepositoryFacade
	generator portssvc.DocumentGeneratorSvc
	notifier  portssvc.NotifierSvc
	docCfg    config.DocumentConfig
	notifyCfg config.NotificationConfig
	now       func() time.Time

	// pending tracks detached notifications so shutdown can wait for them.
	pending sync.WaitGroup
}

// WorkflowOption is a functional option for configuring the workflow engine
type WorkflowOption func(*workflowService)

// WithTransitionTable replaces the default transition table
func WithTransitionTable(table *workflow.Table) WorkflowOption {
	return func(s *workflowService) {
		s.table = table
	}
}

// WithDocumentGenerator adds the decision letter generator
func WithDocumentGenerator(gen portssvc.DocumentGeneratorSvc, cfg config.DocumentConfig) WorkflowOption {
	return func(s *workflowService) {
		s.generator = gen
		s.docCfg = cfg
	}
}

// WithNotifier adds the notification bridge
func WithNotifier(notifier portssvc.NotifierSvc, cfg config.NotificationConfig) WorkflowOption {
	return func(s *workflowService) {
		s.notifier = notifier
		s.notifyCfg = cfg
	}
}

// WithClock overrides the time source used for audit timestamps
func WithClock(now func() time.Time) WorkflowOption {
	return func(s *workflowService) {
		s.now = now
	}
}

// WorkflowService is the engine returned by NewWorkflowService.
type WorkflowService interface {
	portssvc.WorkflowSvc
	// Shutdown waits for detached notifications until ctx ends.
	Shutdown(ctx context.Context) error
}

// NewWorkflowService creates the workflow engine with the provided options
func NewWorkflowService(planRepo portsrepo.PlanRepositoryFacade, options ...WorkflowOption) WorkflowService {
	svc := &workflowService{
		planRepo: planRepo,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.table == nil {
		svc.table = workflow.MustDefault()
	}
	return svc
}

var _ portssvc.WorkflowSvc = (*workflowService)(nil)

func (s *workflowService) Execute(ctx context.Context, planID string, actor domain.Actor, action workflow.Action, remarks string) (*domain.TransitionResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("plan_id", planID),
		slog.String("actor_role", string(actor.Role)),
		slog.String("action", string(action)),
	)

	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		s.record(metrics.ActionUnknown, metrics.OutcomeError)
		return nil, fmt.Errorf("failed to load plan %s: %w", planID, err)
	}

	row, ok := s.table.Lookup(plan.Status, actor.Role, action)
	if !ok {
		logger.Warn("Transition not permitted", slog.String("status", string(plan.Status)))
		s.record(metrics.ActionUnknown, metrics.OutcomeRejected)
		return nil, apperrors.NewIllegalTransitionError(fmt.Sprintf("%s may not %q a plan in status %q", actor.Role, action, plan.Status))
	}

	remarks = strings.TrimSpace(remarks)
	if row.RemarksRequired && remarks == "" {
		s.record(string(row.Action), metrics.OutcomeRejected)
		return nil, apperrors.NewValidationError(fmt.Sprintf("remarks are required to %q", action))
	}

	result := &domain.TransitionResult{PlanID: plan.PlanID}

	var doc *domain.Document
	if row.Document != domain.DocumentNone {
		doc, err = s.generateDocument(ctx, *plan, row, remarks)
		if err != nil {
			if s.docCfg.Required {
				logger.Error("Document generation failed, transition blocked", slog.String("error", err.Error()))
				s.record(string(row.Action), metrics.OutcomeError)
				return nil, apperrors.NewAppError(http.StatusBadGateway, "document generation failed", fmt.Errorf("%w: %v", apperrors.ErrDocumentGeneration, err))
			}
			logger.Warn("Document generation failed, continuing without document", slog.String("error", err.Error()))
			result.SoftFailures = append(result.SoftFailures, domain.SoftFailure{Stage: domain.SoftFailureDocument, Detail: err.Error()})
		}
	}

	now := s.now()
	composed := composeRemarks(action, remarks)
	entry := domain.LogEntry{
		LogID:      uuid.NewString(),
		PlanID:     plan.PlanID,
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		TargetRole: row.LogTargetRole,
		Action:     string(row.Action),
		FromStatus: plan.Status,
		ToStatus:   row.To,
		Remarks:    remarks,
		Timestamp:  now,
	}

	err = s.planRepo.ApplyStatusChange(ctx, domain.StatusChange{
		PlanID:         plan.PlanID,
		ExpectedStatus: plan.Status,
		NewStatus:      row.To,
		Remarks:        &composed,
		UpdatedBy:      actor.UserID,
		UpdatedAt:      now,
		Log:            entry,
		Document:       doc,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Plan changed concurrently", slog.String("expected_status", string(plan.Status)))
			s.record(string(row.Action), metrics.OutcomeConflict)
		} else {
			logger.Error("Failed to commit transition", slog.String("error", err.Error()))
			s.record(string(row.Action), metrics.OutcomeError)
		}
		if doc != nil {
			s.discardDocument(ctx, doc, logger)
		}
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	result.Status = row.To
	result.LogEntry = entry
	result.Document = doc

	plan.Status = row.To
	plan.Remarks = &composed
	if failure := s.dispatchNotification(ctx, *plan, row, entry); failure != nil {
		result.SoftFailures = append(result.SoftFailures, *failure)
	}

	if result.Degraded() {
		s.record(string(row.Action), metrics.OutcomeDegraded)
	} else {
		s.record(string(row.Action), metrics.OutcomeCommitted)
	}
	logger.Info("Transition committed",
		slog.String("from_status", string(entry.FromStatus)),
		slog.String("to_status", string(entry.ToStatus)),
		slog.Int("soft_failures", len(result.SoftFailures)))
	return result, nil
}

// composeRemarks is the text stored on the plan as its last decision.
func composeRemarks(action workflow.Action, remarks string) string {
	if remarks == "" {
		return string(action)
	}
	return string(action) + ": " + remarks
}

func (s *workflowService) generateDocument(ctx context.Context, plan domain.Plan, row workflow.Transition, remarks string) (*domain.Document, error) {
	if s.generator == nil {
		return nil, errors.New("no document generator configured")
	}
	if s.docCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.docCfg.Timeout)
		defer cancel()
	}

	generated, err := s.generator.Generate(ctx, plan, row.Document, string(row.Action), remarks)
	if err != nil {
		return nil, err
	}
	return &domain.Document{
		DocumentID:   uuid.NewString(),
		PlanID:       plan.PlanID,
		Name:         generated.Name,
		FilePath:     generated.FilePath,
		DocumentType: domain.DocumentGenerated,
		Attached:     true,
		CreatedAt:    s.now(),
	}, nil
}

// discardDocument removes a letter stored for a transition that did not commit.
func (s *workflowService) discardDocument(ctx context.Context, doc *domain.Document, logger *slog.Logger) {
	// the request context may be the reason the commit failed
	ctx = context.WithoutCancel(ctx)
	if s.docCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.docCfg.Timeout)
		defer cancel()
	}
	if err := s.generator.Discard(ctx, doc.FilePath); err != nil {
		logger.Error("Failed to discard uncommitted document", slog.String("file_path", doc.FilePath), slog.String("error", err.Error()))
		return
	}
	logger.Info("Discarded uncommitted document", slog.String("file_path", doc.FilePath))
}

func notificationSubstitutions(plan domain.Plan, row workflow.Transition, entry domain.LogEntry) []domain.Substitution {
	subs := []domain.Substitution{
		{Key: "planID", Value: plan.PlanID},
		{Key: "applicantName", Value: plan.ApplicantName},
		{Key: "plotNo", Value: plan.PlotNo},
		{Key: "action", Value: string(row.Action)},
		{Key: "status", Value: string(row.To)},
		{Key: "previousStatus", Value: string(row.From)},
		{Key: "actorRole", Value: string(entry.ActorRole)},
	}
	if plan.ReferenceNo != nil {
		subs = append(subs, domain.Substitution{Key: "referenceNo", Value: *plan.ReferenceNo})
	}
	if entry.Remarks != "" {
		subs = append(subs, domain.Substitution{Key: "remarks", Value: entry.Remarks})
	}
	return subs
}

// dispatchNotification never fails the transition; a synchronous failure is returned as a soft failure.
func (s *workflowService) dispatchNotification(ctx context.Context, plan domain.Plan, row workflow.Transition, entry domain.LogEntry) *domain.SoftFailure {
	if row.Notify == nil || s.notifier == nil {
		return nil
	}
	req := domain.NotificationRequest{
		Target:        row.Notify.Target,
		TemplateBase:  row.Notify.Template,
		Substitutions: notificationSubstitutions(plan, row, entry),
	}

	if s.notifyCfg.Async {
		// Detach from the request so the reply does not cancel delivery.
		detached := context.WithoutCancel(ctx)
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			if err := s.notify(detached, req); err != nil {
				s.LogError(detached, err, "Asynchronous notification failed", slog.String("plan_id", plan.PlanID))
			}
		}()
		return nil
	}

	if err := s.notify(ctx, req); err != nil {
		s.LogWarn(ctx, "Notification failed after commit", slog.String("plan_id", plan.PlanID), slog.String("error", err.Error()))
		return &domain.SoftFailure{Stage: domain.SoftFailureNotification, Detail: err.Error()}
	}
	return nil
}

func (s *workflowService) notify(ctx context.Context, req domain.NotificationRequest) error {
	if s.notifyCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.notifyCfg.Timeout)
		defer cancel()
	}
	return s.notifier.Notify(ctx, req)
}

// record labels by table action only; unmatched request text never becomes a series.
func (s *workflowService) record(action, outcome string) {
	metrics.WorkflowTransitions.WithLabelValues(action, outcome).Inc()
}

func (s *workflowService) AvailableActions(ctx context.Context, planID string, role domain.Role) ([]workflow.Transition, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", planID, err)
	}
	actions := s.table.ActionsFor(plan.Status, role)
	if actions == nil {
		return []workflow.Transition{}, nil
	}
	return actions, nil
}

func (s *workflowService) Transitions() []workflow.Transition {
	return s.table.Rows()
}

func (s *workflowService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
