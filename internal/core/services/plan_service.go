package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/google/uuid"
)

// Roles allowed to register plans and to assign reference numbers.
var (
	intakeRoles    = []domain.Role{domain.RoleReception, domain.RolePlanning}
	referenceRoles = []domain.Role{domain.RolePlanning}
)

// planService implements the plan registry
type planService struct {
	BaseService
	planRepo portsrepo.PlanRepositoryFacade
}

// NewPlanService creates a new plan registry service
func NewPlanService(repo portsrepo.PlanRepositoryFacade) portssvc.PlanSvcFacade {
	return &planService{planRepo: repo}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

func (s *planService) GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %s: %w", planID, err)
	}
	return plan, nil
}

func (s *planService) ListPlansByStatus(ctx context.Context, status domain.PlanStatus) ([]domain.Plan, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", status))
	}
	plans, err := s.planRepo.ListPlansByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans by status: %w", err)
	}
	if plans == nil {
		return []domain.Plan{}, nil
	}
	return plans, nil
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.planRepo.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	if plans == nil {
		return []domain.Plan{}, nil
	}
	return plans, nil
}

func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest, actor domain.Actor) (*domain.Plan, error) {
	if !slices.Contains(intakeRoles, actor.Role) {
		return nil, apperrors.NewForbiddenError("role " + string(actor.Role) + " may not register plans")
	}
	applicant := strings.TrimSpace(req.ApplicantName)
	plotNo := strings.TrimSpace(req.PlotNo)
	if applicant == "" || plotNo == "" {
		return nil, apperrors.NewValidationError("applicant name and plot number are required")
	}
	if !req.PlotArea.IsPositive() {
		return nil, apperrors.NewValidationError("plot area must be positive")
	}

	now := time.Now()
	plan := domain.Plan{
		PlanID:        uuid.NewString(),
		ApplicantName: applicant,
		PlotNo:        plotNo,
		PlotArea:      req.PlotArea,
		Status:        domain.StatusSubmitted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.planRepo.SavePlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to save plan", slog.String("plot_no", plotNo))
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	s.LogInfo(ctx, "Plan registered", slog.String("plan_id", plan.PlanID), slog.String("plot_no", plotNo))
	return &plan, nil
}

func (s *planService) AssignReferenceNo(ctx context.Context, planID string, referenceNo string, actor domain.Actor) (*domain.Plan, error) {
	if !slices.Contains(referenceRoles, actor.Role) {
		return nil, apperrors.NewForbiddenError("role " + string(actor.Role) + " may not assign reference numbers")
	}
	referenceNo = strings.TrimSpace(referenceNo)
	if referenceNo == "" {
		return nil, apperrors.NewValidationError("reference number is required")
	}

	if err := s.planRepo.AssignReferenceNo(ctx, planID, referenceNo, actor.UserID); err != nil {
		s.LogError(ctx, err, "Failed to assign reference number", slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to assign reference number: %w", err)
	}

	return s.GetPlanByID(ctx, planID)
}
