package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/storage"
)

// auditService serves the append-only audit trail and plan documents
type auditService struct {
	BaseService
	planRepo  portsrepo.PlanReader
	auditRepo portsrepo.AuditRepositoryFacade
	files     storage.FileStorage
}

// NewAuditService creates a new audit service
func NewAuditService(planRepo portsrepo.PlanReader, auditRepo portsrepo.AuditRepositoryFacade, files storage.FileStorage) portssvc.AuditSvc {
	return &auditService{planRepo: planRepo, auditRepo: auditRepo, files: files}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

func (s *auditService) ensurePlan(ctx context.Context, planID string) error {
	if _, err := s.planRepo.FindPlanByID(ctx, planID); err != nil {
		return fmt.Errorf("failed to load plan %s: %w", planID, err)
	}
	return nil
}

func (s *auditService) ListLogsByPlan(ctx context.Context, planID string) ([]domain.LogEntry, error) {
	if err := s.ensurePlan(ctx, planID); err != nil {
		return nil, err
	}
	logs, err := s.auditRepo.ListLogsByPlan(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit trail", slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	if logs == nil {
		return []domain.LogEntry{}, nil
	}
	return logs, nil
}

func (s *auditService) ListDocumentsByPlan(ctx context.Context, planID string) ([]domain.Document, error) {
	if err := s.ensurePlan(ctx, planID); err != nil {
		return nil, err
	}
	docs, err := s.auditRepo.ListDocumentsByPlan(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		return []domain.Document{}, nil
	}
	return docs, nil
}

func (s *auditService) GetDocumentDownloadURL(ctx context.Context, documentID string) (*domain.Document, string, error) {
	doc, err := s.auditRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	if s.files == nil {
		return doc, "", nil
	}
	url, err := s.files.GeneratePresignedDownloadURL(ctx, doc.FilePath, storage.DefaultPresignedURLExpiry)
	if errors.Is(err, storage.ErrPresignUnsupported) {
		return doc, "", nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to presign document", slog.String("document_id", documentID))
		return nil, "", fmt.Errorf("failed to presign document: %w", err)
	}
	return doc, url, nil
}

func (s *auditService) OpenDocument(ctx context.Context, documentID string) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.auditRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	if s.files == nil {
		return nil, nil, apperrors.NewNotFoundError("document storage is not configured")
	}
	r, err := s.files.Open(ctx, doc.FilePath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, apperrors.NewNotFoundError("content of document " + documentID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open document: %w", err)
	}
	return doc, r, nil
}
