package services

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/core/workflow"
)

// WorkflowSvc executes role-gated transitions against the transition table
type WorkflowSvc interface {
	// Execute validates and commits one transition. Errors classify as NotFound,
	// IllegalTransition, ValidationError, Conflict or DocumentFailure; soft failures are
	// reported on the result instead.
	Execute(ctx context.Context, planID string, actor domain.Actor, action workflow.Action, remarks string) (*domain.TransitionResult, error)

	// AvailableActions lists the transitions role may fire on the plan right now.
	AvailableActions(ctx context.Context, planID string, role domain.Role) ([]workflow.Transition, error)

	// Transitions returns the full table.
	Transitions() []workflow.Transition
}
