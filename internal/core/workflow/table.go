// Package workflow holds the single authoritative definition of which role may move a
// plan from which status, with which action, and what each move must produce.
package workflow

import (
	"fmt"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// Action is the human-readable label of a transition, as shown to reviewers and
// recorded in the audit trail.
type Action string

const (
	ActionStartReview            Action = "Start Review"
	ActionForwardToDirector      Action = "Forward to Director"
	ActionApproveNoStructural    Action = "Approve (No Structural Review)"
	ActionApproveStructural      Action = "Approve (Structural Review Required)"
	ActionReject                 Action = "Reject"
	ActionDefer                  Action = "Defer"
	ActionResubmitToDirector     Action = "Resubmit to Director"
	ActionBeginStructuralReview  Action = "Begin Structural Review"
	ActionForwardToCommittee     Action = "Forward to Committee"
	ActionDeferForClarification  Action = "Defer (Awaiting Clarification)"
	ActionResumeStructuralReview Action = "Resume Structural Review"
	ActionApprove                Action = "Approve"
)

// Notification template base names used by the table.
const (
	TemplatePlanForwarded = "PlanForwarded"
	TemplatePlanApproved  = "PlanApproved"
	TemplatePlanRejected  = "PlanRejected"
	TemplatePlanDeferred  = "PlanDeferred"
)

// Key identifies a transition row.
type Key struct {
	From   domain.PlanStatus
	Role   domain.Role
	Action Action
}

// Notification describes the message a row asks for after it commits.
type Notification struct {
	Template string
	Target   domain.NotificationTarget
}

// Transition is one row of the table.
type Transition struct {
	From            domain.PlanStatus
	Role            domain.Role
	Action          Action
	To              domain.PlanStatus
	RemarksRequired bool
	Document        domain.DocumentKind
	Notify          *Notification
	LogTargetRole   domain.Role
}

// Key returns the lookup key of t.
func (t Transition) Key() Key {
	return Key{From: t.From, Role: t.Role, Action: t.Action}
}

func notifyRole(template string, role domain.Role) *Notification {
	return &Notification{Template: template, Target: domain.RoleTarget(role)}
}

// DefaultTransitions is the review pipeline Planning -> Director -> Structural -> Committee -> Reception.
var DefaultTransitions = []Transition{
	// Planning intake
	{From: domain.StatusSubmitted, Role: domain.RolePlanning, Action: ActionStartReview,
		To: domain.StatusUnderReviewPlanning, LogTargetRole: domain.RolePlanning},
	{From: domain.StatusUnderReviewPlanning, Role: domain.RolePlanning, Action: ActionForwardToDirector,
		To: domain.StatusUnderReviewDirector, Notify: notifyRole(TemplatePlanForwarded, domain.RoleDirector), LogTargetRole: domain.RoleDirector},

	// Director decisions
	{From: domain.StatusUnderReviewDirector, Role: domain.RoleDirector, Action: ActionApproveNoStructural,
		To: domain.StatusApprovedClientPickup, Document: domain.DocumentApprovalLetter,
		Notify: notifyRole(TemplatePlanApproved, domain.RoleReception), LogTargetRole: domain.RoleReception},
	{From: domain.StatusUnderReviewDirector, Role: domain.RoleDirector, Action: ActionApproveStructural,
		To: domain.StatusDirectorApprovedStructural, Notify: notifyRole(TemplatePlanForwarded, domain.RoleStructural), LogTargetRole: domain.RoleStructural},
	{From: domain.StatusUnderReviewDirector, Role: domain.RoleDirector, Action: ActionReject,
		To: domain.StatusRejectedToPlanning, RemarksRequired: true, Document: domain.DocumentRejectionLetter,
		Notify: notifyRole(TemplatePlanRejected, domain.RolePlanning), LogTargetRole: domain.RolePlanning},
	{From: domain.StatusUnderReviewDirector, Role: domain.RoleDirector, Action: ActionDefer,
		To: domain.StatusDeferredToPlanning, RemarksRequired: true, Document: domain.DocumentDeferralLetter,
		Notify: notifyRole(TemplatePlanDeferred, domain.RolePlanning), LogTargetRole: domain.RolePlanning},

	// Planning rework after a Director or Structural return
	{From: domain.StatusRejectedToPlanning, Role: domain.RolePlanning, Action: ActionResubmitToDirector,
		To: domain.StatusUnderReviewDirector, RemarksRequired: true, Notify: notifyRole(TemplatePlanForwarded, domain.RoleDirector), LogTargetRole: domain.RoleDirector},
	{From: domain.StatusDeferredToPlanning, Role: domain.RolePlanning, Action: ActionResubmitToDirector,
		To: domain.StatusUnderReviewDirector, RemarksRequired: true, Notify: notifyRole(TemplatePlanForwarded, domain.RoleDirector), LogTargetRole: domain.RoleDirector},
	{From: domain.StatusRejectedByStructural, Role: domain.RolePlanning, Action: ActionResubmitToDirector,
		To: domain.StatusUnderReviewDirector, RemarksRequired: true, Notify: notifyRole(TemplatePlanForwarded, domain.RoleDirector), LogTargetRole: domain.RoleDirector},

	// Structural review
	{From: domain.StatusDirectorApprovedStructural, Role: domain.RoleStructural, Action: ActionBeginStructuralReview,
		To: domain.StatusUnderReviewStructural, LogTargetRole: domain.RoleStructural},
	{From: domain.StatusUnderReviewStructural, Role: domain.RoleStructural, Action: ActionForwardToCommittee,
		To: domain.StatusUnderReviewCommittee, Notify: notifyRole(TemplatePlanForwarded, domain.RoleCommittee), LogTargetRole: domain.RoleCommittee},
	{From: domain.StatusUnderReviewStructural, Role: domain.RoleStructural, Action: ActionReject,
		To: domain.StatusRejectedByStructural, RemarksRequired: true, Document: domain.DocumentRejectionLetter,
		Notify: notifyRole(TemplatePlanRejected, domain.RolePlanning), LogTargetRole: domain.RolePlanning},
	{From: domain.StatusUnderReviewStructural, Role: domain.RoleStructural, Action: ActionDeferForClarification,
		To: domain.StatusDeferredByStructural, RemarksRequired: true, Document: domain.DocumentDeferralLetter,
		Notify: notifyRole(TemplatePlanDeferred, domain.RolePlanning), LogTargetRole: domain.RolePlanning},
	// The clarification deferral can only be left through a different action, so defers never chain.
	{From: domain.StatusDeferredByStructural, Role: domain.RoleStructural, Action: ActionResumeStructuralReview,
		To: domain.StatusUnderReviewStructural, RemarksRequired: true, LogTargetRole: domain.RoleStructural},

	// Committee decisions
	{From: domain.StatusUnderReviewCommittee, Role: domain.RoleCommittee, Action: ActionApprove,
		To: domain.StatusApprovedClientPickup, Document: domain.DocumentApprovalCertificate,
		Notify: notifyRole(TemplatePlanApproved, domain.RoleReception), LogTargetRole: domain.RoleReception},
	{From: domain.StatusUnderReviewCommittee, Role: domain.RoleCommittee, Action: ActionReject,
		To: domain.StatusRejected, RemarksRequired: true, Document: domain.DocumentRejectionLetter,
		Notify: notifyRole(TemplatePlanRejected, domain.RoleReception), LogTargetRole: domain.RoleReception},
	{From: domain.StatusUnderReviewCommittee, Role: domain.RoleCommittee, Action: ActionDefer,
		To: domain.StatusDeferred, RemarksRequired: true, Document: domain.DocumentDeferralLetter,
		Notify: notifyRole(TemplatePlanDeferred, domain.RoleReception), LogTargetRole: domain.RoleReception},
}

// Table is an immutable lookup over transition rows.
type Table struct {
	rows  []Transition
	index map[Key]Transition
}

// NewTable builds a table from rows and validates it.
func NewTable(rows []Transition) (*Table, error) {
	t := &Table{
		rows:  make([]Transition, len(rows)),
		index: make(map[Key]Transition, len(rows)),
	}
	copy(t.rows, rows)
	for _, row := range rows {
		if _, dup := t.index[row.Key()]; dup {
			return nil, fmt.Errorf("duplicate transition %q by %s from %q", row.Action, row.Role, row.From)
		}
		t.index[row.Key()] = row
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustDefault returns the table built from DefaultTransitions, panicking if it is malformed.
func MustDefault() *Table {
	t, err := NewTable(DefaultTransitions)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate checks that every row stays inside the status and role sets and that no
// row leaves a terminal status.
func (t *Table) Validate() error {
	for _, row := range t.rows {
		if !row.From.IsValid() {
			return fmt.Errorf("transition %q: unknown source status %q", row.Action, row.From)
		}
		if !row.To.IsValid() {
			return fmt.Errorf("transition %q: unknown target status %q", row.Action, row.To)
		}
		if row.From.IsTerminal() {
			return fmt.Errorf("transition %q: source status %q is terminal", row.Action, row.From)
		}
		if !row.Role.IsValid() || !row.LogTargetRole.IsValid() {
			return fmt.Errorf("transition %q from %q: unknown role", row.Action, row.From)
		}
		if row.Action == "" {
			return fmt.Errorf("transition from %q by %s has no action", row.From, row.Role)
		}
	}
	return nil
}

// Lookup finds the row for (from, role, action).
func (t *Table) Lookup(from domain.PlanStatus, role domain.Role, action Action) (Transition, bool) {
	row, ok := t.index[Key{From: from, Role: role, Action: action}]
	return row, ok
}

// ActionsFor returns the rows role may fire while a plan is in status from, in table order.
func (t *Table) ActionsFor(from domain.PlanStatus, role domain.Role) []Transition {
	var out []Transition
	for _, row := range t.rows {
		if row.From == from && row.Role == role {
			out = append(out, row)
		}
	}
	return out
}

// Rows returns a copy of every row in table order.
func (t *Table) Rows() []Transition {
	out := make([]Transition, len(t.rows))
	copy(out, t.rows)
	return out
}
