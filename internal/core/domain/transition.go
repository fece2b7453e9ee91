package domain

// Actor is the authenticated user firing a transition and the role they act in.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}

// SoftFailureStage names the side effect that degraded.
type SoftFailureStage string

const (
	SoftFailureDocument     SoftFailureStage = "document"
	SoftFailureNotification SoftFailureStage = "notification"
)

// SoftFailure is a side effect that failed without blocking the transition.
type SoftFailure struct {
	Stage  SoftFailureStage `json:"stage"`
	Detail string           `json:"detail"`
}

// TransitionResult is what a committed transition hands back to the caller.
type TransitionResult struct {
	PlanID       string        `json:"planID"`
	Status       PlanStatus    `json:"status"`
	LogEntry     LogEntry      `json:"logEntry"`
	Document     *Document     `json:"document,omitempty"`
	SoftFailures []SoftFailure `json:"softFailures"`
}

// Degraded reports whether any side effect failed.
func (r *TransitionResult) Degraded() bool {
	return len(r.SoftFailures) > 0
}
