package mapping

import (
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/models"
)

func ToModelMessageTemplate(d domain.MessageTemplate) models.MessageTemplate {
	return models.MessageTemplate(d)
}

func ToDomainMessageTemplate(m models.MessageTemplate) domain.MessageTemplate {
	return domain.MessageTemplate(m)
}

func ToModelMessageLog(d domain.MessageLog) models.MessageLog {
	return models.MessageLog{
		MessageLogID: d.MessageLogID,
		Recipient:    d.Recipient,
		Channel:      string(d.Channel),
		Subject:      d.Subject,
		Body:         d.Body,
		Status:       string(d.Status),
		Detail:       d.Detail,
		CreatedAt:    d.CreatedAt,
	}
}

func ToDomainMessageLog(m models.MessageLog) domain.MessageLog {
	return domain.MessageLog{
		MessageLogID: m.MessageLogID,
		Recipient:    m.Recipient,
		Channel:      domain.Channel(m.Channel),
		Subject:      m.Subject,
		Body:         m.Body,
		Status:       domain.MessageStatus(m.Status),
		Detail:       m.Detail,
		CreatedAt:    m.CreatedAt,
	}
}
