package domain

import "time"

// LogEntry is an immutable audit record of one successful transition.
type LogEntry struct {
	LogID      string     `json:"logID"`
	PlanID     string     `json:"planID"`
	ActorID    string     `json:"actorID"`
	ActorRole  Role       `json:"actorRole"`
	TargetRole Role       `json:"targetRole"`
	Action     string     `json:"action"`
	FromStatus PlanStatus `json:"fromStatus"`
	ToStatus   PlanStatus `json:"toStatus"`
	Remarks    string     `json:"remarks"`
	Timestamp  time.Time  `json:"timestamp"`
}
