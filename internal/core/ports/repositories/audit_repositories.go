package repositories

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// LogReader defines read operations over the append-only audit trail.
// Entries are written only through PlanTransitionSupport.ApplyStatusChange.
type LogReader interface {
	// ListLogsByPlan returns a plan's audit entries in timestamp order.
	ListLogsByPlan(ctx context.Context, planID string) ([]domain.LogEntry, error)

	// CountLogsByPlan returns the number of audit entries for a plan.
	CountLogsByPlan(ctx context.Context, planID string) (int, error)
}

// DocumentReader defines read operations for plan documents
type DocumentReader interface {
	// FindDocumentByID retrieves a document by its ID.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocumentsByPlan returns a plan's documents, oldest first.
	ListDocumentsByPlan(ctx context.Context, planID string) ([]domain.Document, error)
}

// DocumentWriter defines write operations for documents outside a transition (uploads).
type DocumentWriter interface {
	// SaveDocument persists a document record.
	SaveDocument(ctx context.Context, doc domain.Document) error
}

// AuditRepositoryFacade combines the audit trail and document interfaces
type AuditRepositoryFacade interface {
	LogReader
	DocumentReader
	DocumentWriter
}
