package services_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/core/services"
	"github.com/SscSPs/plan_approval_app/internal/core/workflow"
	"github.com/SscSPs/plan_approval_app/internal/documents"
	"github.com/SscSPs/plan_approval_app/internal/metrics"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/SscSPs/plan_approval_app/internal/repositories/memory"
	"github.com/SscSPs/plan_approval_app/internal/storage"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type WorkflowServiceTestSuite struct {
	suite.Suite
	store     *memory.Store
	generator *MockDocumentGenerator
	notifier  *MockNotifier
	docCfg    config.DocumentConfig
	notifyCfg config.NotificationConfig
	service   services.WorkflowService
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.generator = new(MockDocumentGenerator)
	suite.notifier = new(MockNotifier)
	suite.docCfg = config.DocumentConfig{Timeout: time.Second}
	suite.notifyCfg = config.NotificationConfig{Timeout: time.Second}
	suite.service = suite.newService()
}

func (suite *WorkflowServiceTestSuite) newService() services.WorkflowService {
	return services.NewWorkflowService(suite.store,
		services.WithDocumentGenerator(suite.generator, suite.docCfg),
		services.WithNotifier(suite.notifier, suite.notifyCfg),
		services.WithClock(func() time.Time { return fixedNow }),
	)
}

func (suite *WorkflowServiceTestSuite) seedPlan(status domain.PlanStatus) string {
	id := uuid.NewString()
	suite.Require().NoError(suite.store.SavePlan(context.Background(), domain.Plan{
		PlanID:        id,
		ApplicantName: "Jane Doe",
		PlotNo:        "A-12",
		PlotArea:      decimal.NewFromInt(250),
		Status:        status,
	}))
	return id
}

func (suite *WorkflowServiceTestSuite) status(planID string) domain.PlanStatus {
	plan, err := suite.store.FindPlanByID(context.Background(), planID)
	suite.Require().NoError(err)
	return plan.Status
}

func (suite *WorkflowServiceTestSuite) logCount(planID string) int {
	n, err := suite.store.CountLogsByPlan(context.Background(), planID)
	suite.Require().NoError(err)
	return n
}

func director() domain.Actor {
	return domain.Actor{UserID: "director-1", Role: domain.RoleDirector}
}

func (suite *WorkflowServiceTestSuite) TestExecute_DirectorApprovesWithoutStructuralReview() {
	ctx := context.Background()
	planID := suite.seedPlan(domain.StatusUnderReviewDirector)

	suite.generator.On("Generate", mock.Anything, mock.AnythingOfType("domain.Plan"), domain.DocumentApprovalLetter, "Approve (No Structural Review)", "ok").
		Return(&portssvc.GeneratedDocument{Name: "Approval Letter - A-12", FilePath: "plans/x/letter.txt"}, nil).Once()
	suite.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(req domain.NotificationRequest) bool {
		return req.TemplateBase == workflow.TemplatePlanApproved && req.Target == domain.RoleTarget(domain.RoleReception)
	})).Return(nil).Once()

	result, err := suite.service.Execute(ctx, planID, director(), workflow.ActionApproveNoStructural, "ok")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApprovedClientPickup, result.Status)
	suite.Empty(result.SoftFailures)
	suite.Equal(domain.StatusApprovedClientPickup, suite.status(planID))

	logs, err := suite.store.ListLogsByPlan(ctx, planID)
	suite.Require().NoError(err)
	suite.Require().Len(logs, 1)
	suite.Equal(domain.RoleReception, logs[0].TargetRole)
	suite.Equal(domain.RoleDirector, logs[0].ActorRole)
	suite.Equal("ok", logs[0].Remarks)
	suite.Equal(fixedNow, logs[0].Timestamp)
	suite.Equal(result.LogEntry, logs[0])

	docs, err := suite.store.ListDocumentsByPlan(ctx, planID)
	suite.Require().NoError(err)
	suite.Require().Len(docs, 1)
	suite.Equal(domain.DocumentGenerated, docs[0].DocumentType)
	suite.True(docs[0].Attached)
	suite.Require().NotNil(result.Document)
	suite.Equal(docs[0].DocumentID, result.Document.DocumentID)

	plan, _ := suite.store.FindPlanByID(ctx, planID)
	suite.Require().NotNil(plan.Remarks)
	suite.Equal("Approve (No Structural Review): ok", *plan.Remarks)

	suite.generator.AssertExpectations(suite.T())
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestExecute_PlanNotFound() {
	_, err := suite.service.Execute(context.Background(), "missing", director(), workflow.ActionApprove, "")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(apperrors.KindNotFound, apperrors.Kind(err))
}

func (suite *WorkflowServiceTestSuite) TestExecute_IllegalTransitions() {
	tests := []struct {
		name   string
		status domain.PlanStatus
		actor  domain.Actor
		action workflow.Action
	}{
		{"wrong role", domain.StatusSubmitted, director(), workflow.ActionStartReview},
		{"stale status", domain.StatusUnderReviewPlanning, domain.Actor{UserID: "p1", Role: domain.RolePlanning}, workflow.ActionStartReview},
		{"unknown action", domain.StatusUnderReviewDirector, director(), "Escalate"},
		{"terminal status", domain.StatusApprovedClientPickup, director(), workflow.ActionReject},
		{"defer chain", domain.StatusDeferredByStructural, domain.Actor{UserID: "s1", Role: domain.RoleStructural}, workflow.ActionDeferForClarification},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			planID := suite.seedPlan(tt.status)

			result, err := suite.service.Execute(context.Background(), planID, tt.actor, tt.action, "some remarks")

			suite.Nil(result)
			suite.ErrorIs(err, apperrors.ErrIllegalTransition)
			suite.Equal(tt.status, suite.status(planID))
			suite.Zero(suite.logCount(planID))
		})
	}
	suite.generator.AssertNotCalled(suite.T(), "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.notifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestExecute_RemarksRequired() {
	for _, action := range []workflow.Action{workflow.ActionReject, workflow.ActionDefer} {
		planID := suite.seedPlan(domain.StatusUnderReviewDirector)

		_, err := suite.service.Execute(context.Background(), planID, director(), action, "   ")

		suite.ErrorIs(err, apperrors.ErrValidation, string(action))
		suite.Equal(domain.StatusUnderReviewDirector, suite.status(planID))
		suite.Zero(suite.logCount(planID))
	}
	suite.generator.AssertNotCalled(suite.T(), "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestExecute_RejectWithRemarks() {
	ctx := context.Background()
	planID := suite.seedPlan(domain.StatusUnderReviewDirector)
	suite.generator.On("Generate", mock.Anything, mock.Anything, domain.DocumentRejectionLetter, "Reject", "height exceeds limit").
		Return(&portssvc.GeneratedDocument{Name: "Rejection Letter", FilePath: "r.txt"}, nil).Once()
	suite.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(req domain.NotificationRequest) bool {
		for _, s := range req.Substitutions {
			if s.Key == "remarks" {
				return s.Value == "height exceeds limit"
			}
		}
		return false
	})).Return(nil).Once()

	result, err := suite.service.Execute(ctx, planID, director(), workflow.ActionReject, "  height exceeds limit ")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejectedToPlanning, result.Status)
	suite.Equal(domain.RolePlanning, result.LogEntry.TargetRole)
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestExecute_DocumentFailureDegrades() {
	ctx := context.Background()
	planID := suite.seedPlan(domain.StatusUnderReviewDirector)
	suite.generator.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("disk full")).Once()
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.Execute(ctx, planID, director(), workflow.ActionApproveNoStructural, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApprovedClientPickup, result.Status)
	suite.Nil(result.Document)
	suite.Require().Len(result.SoftFailures, 1)
	suite.Equal(domain.SoftFailureDocument, result.SoftFailures[0].Stage)
	suite.True(result.Degraded())
	suite.Equal(1, suite.logCount(planID))
	docs, _ := suite.store.ListDocumentsByPlan(ctx, planID)
	suite.Empty(docs)
}

func (suite *WorkflowServiceTestSuite) TestExecute_DocumentFailureBlocksInStrictMode() {
	suite.docCfg.Required = true
	suite.service = suite.newService()
	planID := suite.seedPlan(domain.StatusUnderReviewDirector)
	suite.generator.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded).Once()

	result, err := suite.service.Execute(context.Background(), planID, director(), workflow.ActionApproveNoStructural, "ok")

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrDocumentGeneration)
	suite.Equal(apperrors.KindDocumentFailure, apperrors.Kind(err))
	suite.Equal(domain.StatusUnderReviewDirector, suite.status(planID))
	suite.Zero(suite.logCount(planID))
	suite.notifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestExecute_MissingGeneratorDegrades() {
	svc := services.NewWorkflowService(suite.store, services.WithNotifier(suite.notifier, suite.notifyCfg))
	planID := suite.seedPlan(domain.StatusUnderReviewCommittee)
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.Execute(context.Background(), planID, domain.Actor{UserID: "c1", Role: domain.RoleCommittee}, workflow.ActionApprove, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApprovedClientPickup, result.Status)
	suite.Require().Len(result.SoftFailures, 1)
	suite.Equal(domain.SoftFailureDocument, result.SoftFailures[0].Stage)
}

func (suite *WorkflowServiceTestSuite) TestExecute_NotificationFailureIsSoft() {
	planID := suite.seedPlan(domain.StatusUnderReviewPlanning)
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	result, err := suite.service.Execute(context.Background(), planID, domain.Actor{UserID: "p1", Role: domain.RolePlanning}, workflow.ActionForwardToDirector, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusUnderReviewDirector, result.Status)
	suite.Require().Len(result.SoftFailures, 1)
	suite.Equal(domain.SoftFailureNotification, result.SoftFailures[0].Stage)
	suite.Equal(domain.StatusUnderReviewDirector, suite.status(planID))
}

func (suite *WorkflowServiceTestSuite) TestExecute_AsyncNotification() {
	suite.notifyCfg.Async = true
	suite.service = suite.newService()
	planID := suite.seedPlan(domain.StatusUnderReviewPlanning)
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("ignored")).Once()

	result, err := suite.service.Execute(context.Background(), planID, domain.Actor{UserID: "p1", Role: domain.RolePlanning}, workflow.ActionForwardToDirector, "")

	suite.Require().NoError(err)
	suite.Empty(result.SoftFailures)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	suite.Require().NoError(suite.service.Shutdown(ctx))
	suite.notifier.AssertExpectations(suite.T())
}

// barrierRepo holds every reader until all of them have seen the plan, forcing
// concurrent transitions to start from the same status.
type barrierRepo struct {
	*memory.Store
	reads *sync.WaitGroup
}

func (r *barrierRepo) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	plan, err := r.Store.FindPlanByID(ctx, planID)
	r.reads.Done()
	r.reads.Wait()
	return plan, err
}

func (suite *WorkflowServiceTestSuite) TestExecute_ConcurrentTransitionsOneWins() {
	const callers = 2
	planID := suite.seedPlan(domain.StatusSubmitted)
	reads := new(sync.WaitGroup)
	reads.Add(callers)
	svc := services.NewWorkflowService(&barrierRepo{Store: suite.store, reads: reads})

	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Execute(context.Background(), planID, domain.Actor{UserID: uuid.NewString(), Role: domain.RolePlanning}, workflow.ActionStartReview, "")
		}(i)
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrConflict):
			conflicts++
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, conflicts)
	suite.Equal(1, suite.logCount(planID))
	suite.Equal(domain.StatusUnderReviewPlanning, suite.status(planID))
}

func (suite *WorkflowServiceTestSuite) TestExecute_ConcurrentRejectsKeepOneLetter() {
	const callers = 2
	root := suite.T().TempDir()
	files, err := storage.NewLocalStorage(root)
	suite.Require().NoError(err)

	planID := suite.seedPlan(domain.StatusUnderReviewDirector)
	reads := new(sync.WaitGroup)
	reads.Add(callers)
	svc := services.NewWorkflowService(&barrierRepo{Store: suite.store, reads: reads},
		services.WithDocumentGenerator(documents.NewGenerator(files), suite.docCfg))

	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Execute(context.Background(), planID, director(), workflow.ActionReject, "setback too small")
		}(i)
	}
	wg.Wait()

	conflicts := 0
	for _, err := range errs {
		if errors.Is(err, apperrors.ErrConflict) {
			conflicts++
		}
	}
	suite.Equal(1, conflicts)

	docs, err := suite.store.ListDocumentsByPlan(context.Background(), planID)
	suite.Require().NoError(err)
	suite.Require().Len(docs, 1)

	var stored []string
	suite.Require().NoError(filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			stored = append(stored, filepath.ToSlash(rel))
		}
		return nil
	}))
	suite.Equal([]string{docs[0].FilePath}, stored)
}

// failingCommitRepo rejects every status change.
type failingCommitRepo struct {
	*memory.Store
	err error
}

func (r *failingCommitRepo) ApplyStatusChange(ctx context.Context, change domain.StatusChange) error {
	return r.err
}

func (suite *WorkflowServiceTestSuite) TestExecute_CommitFailureDiscardsDocument() {
	planID := suite.seedPlan(domain.StatusUnderReviewDirector)
	repo := &failingCommitRepo{Store: suite.store, err: errors.New("connection reset")}
	svc := services.NewWorkflowService(repo, services.WithDocumentGenerator(suite.generator, suite.docCfg))
	suite.generator.On("Generate", mock.Anything, mock.Anything, domain.DocumentDeferralLetter, "Defer", "need soil report").
		Return(&portssvc.GeneratedDocument{Name: "Deferral Letter - A-12", FilePath: "plans/x/deferral.txt"}, nil).Once()
	suite.generator.On("Discard", mock.Anything, "plans/x/deferral.txt").Return(nil).Once()

	result, err := svc.Execute(context.Background(), planID, director(), workflow.ActionDefer, "need soil report")

	suite.Nil(result)
	suite.Error(err)
	suite.generator.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestExecute_CommittedDocumentIsKept() {
	planID := suite.seedPlan(domain.StatusUnderReviewDirector)
	suite.generator.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&portssvc.GeneratedDocument{Name: "doc", FilePath: "doc.txt"}, nil).Once()
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.Execute(context.Background(), planID, director(), workflow.ActionApproveNoStructural, "")

	suite.Require().NoError(err)
	suite.generator.AssertNotCalled(suite.T(), "Discard", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestExecute_UnknownActionsShareOneMetricSeries() {
	planID := suite.seedPlan(domain.StatusUnderReviewDirector)
	unknown := metrics.WorkflowTransitions.WithLabelValues(metrics.ActionUnknown, metrics.OutcomeRejected)
	before := testutil.ToFloat64(unknown)
	seriesBefore := testutil.CollectAndCount(metrics.WorkflowTransitions)

	const attempts = 25
	for i := 0; i < attempts; i++ {
		_, err := suite.service.Execute(context.Background(), planID, director(), workflow.Action(uuid.NewString()), "")
		suite.ErrorIs(err, apperrors.ErrIllegalTransition)
	}

	suite.Equal(before+attempts, testutil.ToFloat64(unknown))
	suite.Equal(seriesBefore, testutil.CollectAndCount(metrics.WorkflowTransitions))
}

func (suite *WorkflowServiceTestSuite) TestExecute_EveryRowLandsOnItsTarget() {
	suite.generator.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&portssvc.GeneratedDocument{Name: "doc", FilePath: "doc.txt"}, nil)
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	for _, row := range workflow.DefaultTransitions {
		planID := suite.seedPlan(row.From)

		result, err := suite.service.Execute(context.Background(), planID, domain.Actor{UserID: "u", Role: row.Role}, row.Action, "because")

		suite.Require().NoError(err, "%s by %s from %s", row.Action, row.Role, row.From)
		suite.Equal(row.To, result.Status)
		suite.True(result.Status.IsValid())
		suite.Equal(row.To, suite.status(planID))
		suite.Equal(row.LogTargetRole, result.LogEntry.TargetRole)
		suite.Equal(row.Document != domain.DocumentNone, result.Document != nil)
	}
}

func (suite *WorkflowServiceTestSuite) TestAvailableActions() {
	planID := suite.seedPlan(domain.StatusUnderReviewDirector)

	actions, err := suite.service.AvailableActions(context.Background(), planID, domain.RoleDirector)
	suite.Require().NoError(err)
	suite.Len(actions, 4)

	actions, err = suite.service.AvailableActions(context.Background(), planID, domain.RolePlanning)
	suite.Require().NoError(err)
	suite.NotNil(actions)
	suite.Empty(actions)

	_, err = suite.service.AvailableActions(context.Background(), "missing", domain.RoleDirector)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WorkflowServiceTestSuite) TestTransitions() {
	suite.Len(suite.service.Transitions(), len(workflow.DefaultTransitions))
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
