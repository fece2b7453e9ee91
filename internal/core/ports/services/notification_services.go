package services

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// NotifierSvc is the notification bridge the workflow engine calls after a commit.
type NotifierSvc interface {
	// Notify resolves the target, renders the per-channel templates and delivers them.
	// Per-recipient problems are recorded as MessageLog entries; the returned error
	// only reports that the request as a whole could not be processed.
	Notify(ctx context.Context, req domain.NotificationRequest) error
}

// MessageTransport delivers rendered messages. A nil error means delivered.
type MessageTransport interface {
	SendEmail(ctx context.Context, address, subject, body string) error
	SendSMS(ctx context.Context, number, body string) error
}

// GeneratedDocument is the file a generator produced.
type GeneratedDocument struct {
	Name     string
	FilePath string
}

// DocumentGeneratorSvc produces decision letters and certificates.
type DocumentGeneratorSvc interface {
	// Generate renders the document for kind and stores it, returning its reference.
	Generate(ctx context.Context, plan domain.Plan, kind domain.DocumentKind, decisionLabel, remarks string) (*GeneratedDocument, error)

	// Discard removes a generated file that was never registered. Missing files are not an error.
	Discard(ctx context.Context, filePath string) error
}
