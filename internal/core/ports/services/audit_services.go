package services

import (
	"context"
	"io"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// AuditSvc exposes the audit trail and plan documents
type AuditSvc interface {
	// ListLogsByPlan returns the plan's transitions in timestamp order.
	ListLogsByPlan(ctx context.Context, planID string) ([]domain.LogEntry, error)

	// ListDocumentsByPlan returns the plan's documents.
	ListDocumentsByPlan(ctx context.Context, planID string) ([]domain.Document, error)

	// GetDocumentDownloadURL returns the document and a short-lived URL for its content.
	// The URL is empty when the backend cannot presign; use OpenDocument then.
	GetDocumentDownloadURL(ctx context.Context, documentID string) (*domain.Document, string, error)

	// OpenDocument streams a document's content. The caller closes the reader.
	OpenDocument(ctx context.Context, documentID string) (*domain.Document, io.ReadCloser, error)
}
