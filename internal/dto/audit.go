package dto

import "github.com/SscSPs/plan_approval_app/internal/core/domain"

// ListLogsResponse wraps a plan's audit trail.
type ListLogsResponse struct {
	Logs []domain.LogEntry `json:"logs"`
}

// ListDocumentsResponse wraps a plan's documents.
type ListDocumentsResponse struct {
	Documents []domain.Document `json:"documents"`
}

// DocumentDownloadResponse points the caller at a document's content.
type DocumentDownloadResponse struct {
	Document domain.Document `json:"document"`
	URL      string          `json:"url"`
}
