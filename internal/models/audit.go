package models

import "time"

// PlanLog is an append-only row of plan_logs.
type PlanLog struct {
	LogID      string    `db:"log_id"`
	PlanID     string    `db:"plan_id"`
	ActorID    string    `db:"actor_id"`
	ActorRole  string    `db:"actor_role"`
	TargetRole string    `db:"target_role"`
	Action     string    `db:"action"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	Remarks    string    `db:"remarks"`
	Timestamp  time.Time `db:"created_at"`
}

// Document is a row of documents.
type Document struct {
	DocumentID   string    `db:"document_id"`
	PlanID       string    `db:"plan_id"`
	Name         string    `db:"name"`
	FilePath     string    `db:"file_path"`
	DocumentType string    `db:"document_type"`
	Attached     bool      `db:"attached"`
	CreatedAt    time.Time `db:"created_at"`
}
