package repositories

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// PlanReader defines read operations for plan data
type PlanReader interface {
	// FindPlanByID retrieves a plan by its ID. Returns apperrors.ErrNotFound when absent.
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// ListPlansByStatus retrieves every plan currently in status, oldest first.
	ListPlansByStatus(ctx context.Context, status domain.PlanStatus) ([]domain.Plan, error)

	// ListPlans retrieves every plan, oldest first.
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}

// PlanWriter defines write operations for plan data
type PlanWriter interface {
	// SavePlan persists a new plan.
	SavePlan(ctx context.Context, plan domain.Plan) error

	// AssignReferenceNo sets the reference number once; a second assignment is a conflict.
	AssignReferenceNo(ctx context.Context, planID string, referenceNo string, updatedBy string) error
}

// PlanTransitionSupport defines the atomic unit a workflow transition commits through
type PlanTransitionSupport interface {
	// ApplyStatusChange performs the conditioned status update, appends the audit entry and
	// registers the document (if any) as one unit. Nothing is written on failure.
	ApplyStatusChange(ctx context.Context, change domain.StatusChange) error
}

// PlanRepositoryFacade combines all plan-related repository interfaces
type PlanRepositoryFacade interface {
	PlanReader
	PlanWriter
	PlanTransitionSupport
}
