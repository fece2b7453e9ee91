package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanStatus is the review stage a plan is currently in.
// Values are persisted verbatim; anything outside the set below is invalid.
type PlanStatus string

const (
	StatusSubmitted                  PlanStatus = "Submitted"
	StatusUnderReviewPlanning        PlanStatus = "Under Review (Planning)"
	StatusUnderReviewDirector        PlanStatus = "Under Review (Director)"
	StatusDirectorApprovedStructural PlanStatus = "Approved by Director (Structural Routing)"
	StatusUnderReviewStructural      PlanStatus = "Under Review (Structural)"
	StatusUnderReviewCommittee       PlanStatus = "Under Review (Committee)"
	StatusApprovedClientPickup       PlanStatus = "Approved (Awaiting Client Pickup)"
	StatusRejectedToPlanning         PlanStatus = "Rejected (Returned to Planning)"
	StatusDeferredToPlanning         PlanStatus = "Deferred (Returned to Planning)"
	StatusRejectedByStructural       PlanStatus = "Rejected by Structural (Returned to Planning)"
	StatusDeferredByStructural       PlanStatus = "Deferred, Awaiting Clarification"
	StatusRejected                   PlanStatus = "Rejected"
	StatusDeferred                   PlanStatus = "Deferred"
)

var allStatuses = []PlanStatus{
	StatusSubmitted,
	StatusUnderReviewPlanning,
	StatusUnderReviewDirector,
	StatusDirectorApprovedStructural,
	StatusUnderReviewStructural,
	StatusUnderReviewCommittee,
	StatusApprovedClientPickup,
	StatusRejectedToPlanning,
	StatusDeferredToPlanning,
	StatusRejectedByStructural,
	StatusDeferredByStructural,
	StatusRejected,
	StatusDeferred,
}

// AllStatuses returns the fixed set of plan statuses.
func AllStatuses() []PlanStatus {
	out := make([]PlanStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// IsValid reports whether s is a member of the fixed status set.
func (s PlanStatus) IsValid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition may leave s.
func (s PlanStatus) IsTerminal() bool {
	switch s {
	case StatusApprovedClientPickup, StatusRejected, StatusDeferred:
		return true
	}
	return false
}

// Plan represents a building-permit application moving through review stages.
type Plan struct {
	PlanID        string          `json:"planID"` // Primary Key (UUID), immutable
	ApplicantName string          `json:"applicantName"`
	PlotNo        string          `json:"plotNo"`
	PlotArea      decimal.Decimal `json:"plotArea"`    // Square metres
	ReferenceNo   *string         `json:"referenceNo"` // Nullable until assigned
	Status        PlanStatus      `json:"status"`
	Remarks       *string         `json:"remarks"` // Last decision text
	AuditFields
}

// StatusChange carries everything that must become visible together when a plan moves
// from one status to the next: the conditioned status update, its audit entry and the
// optional generated document.
type StatusChange struct {
	PlanID         string
	ExpectedStatus PlanStatus
	NewStatus      PlanStatus
	Remarks        *string
	UpdatedBy      string
	UpdatedAt      time.Time
	Log            LogEntry
	Document       *Document
}
