package dto

import (
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/core/workflow"
)

// ExecuteTransitionRequest carries a reviewer's decision on a plan.
type ExecuteTransitionRequest struct {
	Action  string `json:"action" binding:"required,max=100"`
	Remarks string `json:"remarks" binding:"max=2000"`
}

// TransitionResponse is returned after a transition commits.
type TransitionResponse struct {
	PlanID       string               `json:"planID"`
	Status       string               `json:"status"`
	LogEntry     domain.LogEntry      `json:"logEntry"`
	Document     *domain.Document     `json:"document,omitempty"`
	SoftFailures []domain.SoftFailure `json:"softFailures"`
}

// ToTransitionResponse converts an engine result to its response DTO.
func ToTransitionResponse(r *domain.TransitionResult) TransitionResponse {
	softFailures := r.SoftFailures
	if softFailures == nil {
		softFailures = []domain.SoftFailure{}
	}
	return TransitionResponse{
		PlanID:       r.PlanID,
		Status:       string(r.Status),
		LogEntry:     r.LogEntry,
		Document:     r.Document,
		SoftFailures: softFailures,
	}
}

// TransitionRowResponse describes one row of the transition table.
type TransitionRowResponse struct {
	From                 string `json:"from"`
	Role                 string `json:"role"`
	Action               string `json:"action"`
	To                   string `json:"to"`
	RemarksRequired      bool   `json:"remarksRequired"`
	Document             string `json:"document,omitempty"`
	NotificationTemplate string `json:"notificationTemplate,omitempty"`
	NotifyRole           string `json:"notifyRole,omitempty"`
	LogTargetRole        string `json:"logTargetRole"`
}

// ToTransitionRowResponse converts a table row to its response DTO.
func ToTransitionRowResponse(t workflow.Transition) TransitionRowResponse {
	res := TransitionRowResponse{
		From:            string(t.From),
		Role:            string(t.Role),
		Action:          string(t.Action),
		To:              string(t.To),
		RemarksRequired: t.RemarksRequired,
		Document:        string(t.Document),
		LogTargetRole:   string(t.LogTargetRole),
	}
	if t.Notify != nil {
		res.NotificationTemplate = t.Notify.Template
		res.NotifyRole = string(t.Notify.Target.Role)
	}
	return res
}

// ToListTransitionRowResponse converts rows to their response DTOs.
func ToListTransitionRowResponse(rows []workflow.Transition) []TransitionRowResponse {
	res := make([]TransitionRowResponse, len(rows))
	for i, row := range rows {
		res[i] = ToTransitionRowResponse(row)
	}
	return res
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorKind string `json:"errorKind"`
	Status    string `json:"status,omitempty"`
}
