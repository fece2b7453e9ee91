package repositories

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// MessageTemplateStore defines template lookup and seeding
type MessageTemplateStore interface {
	// FindMessageTemplateByName retrieves a template by its unique name.
	FindMessageTemplateByName(ctx context.Context, name string) (*domain.MessageTemplate, error)

	// SaveMessageTemplate inserts or replaces a template keyed by name.
	SaveMessageTemplate(ctx context.Context, tmpl domain.MessageTemplate) error
}

// MessageLogStore defines the delivery log
type MessageLogStore interface {
	// SaveMessageLog appends a delivery outcome.
	SaveMessageLog(ctx context.Context, entry domain.MessageLog) error

	// ListMessageLogsByRecipient returns the delivery outcomes for one address or number.
	ListMessageLogsByRecipient(ctx context.Context, recipient string) ([]domain.MessageLog, error)
}

// MessageRepositoryFacade combines template and message log interfaces
type MessageRepositoryFacade interface {
	MessageTemplateStore
	MessageLogStore
}
