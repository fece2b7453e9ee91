package services

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/dto"
)

// PlanReaderSvc defines read operations for plan data
type PlanReaderSvc interface {
	// GetPlanByID retrieves a plan by ID. Fails with apperrors.ErrNotFound when absent.
	GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// ListPlansByStatus retrieves the plans currently in status.
	ListPlansByStatus(ctx context.Context, status domain.PlanStatus) ([]domain.Plan, error)

	// ListPlans retrieves every plan.
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}

// PlanWriterSvc defines the plan registry writes that sit outside the state machine
type PlanWriterSvc interface {
	// CreatePlan registers a new plan in the initial status.
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest, actor domain.Actor) (*domain.Plan, error)

	// AssignReferenceNo sets a plan's reference number once.
	AssignReferenceNo(ctx context.Context, planID string, referenceNo string, actor domain.Actor) (*domain.Plan, error)
}

// PlanSvcFacade combines all plan-related service interfaces
type PlanSvcFacade interface {
	PlanReaderSvc
	PlanWriterSvc
}
