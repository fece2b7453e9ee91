package mapping

import (
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/models"
)

func ToModelPlanLog(d domain.LogEntry) models.PlanLog {
	return models.PlanLog{
		LogID:      d.LogID,
		PlanID:     d.PlanID,
		ActorID:    d.ActorID,
		ActorRole:  string(d.ActorRole),
		TargetRole: string(d.TargetRole),
		Action:     d.Action,
		FromStatus: string(d.FromStatus),
		ToStatus:   string(d.ToStatus),
		Remarks:    d.Remarks,
		Timestamp:  d.Timestamp,
	}
}

func ToDomainLogEntry(m models.PlanLog) domain.LogEntry {
	return domain.LogEntry{
		LogID:      m.LogID,
		PlanID:     m.PlanID,
		ActorID:    m.ActorID,
		ActorRole:  domain.Role(m.ActorRole),
		TargetRole: domain.Role(m.TargetRole),
		Action:     m.Action,
		FromStatus: domain.PlanStatus(m.FromStatus),
		ToStatus:   domain.PlanStatus(m.ToStatus),
		Remarks:    m.Remarks,
		Timestamp:  m.Timestamp,
	}
}

func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:   d.DocumentID,
		PlanID:       d.PlanID,
		Name:         d.Name,
		FilePath:     d.FilePath,
		DocumentType: string(d.DocumentType),
		Attached:     d.Attached,
		CreatedAt:    d.CreatedAt,
	}
}

func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:   m.DocumentID,
		PlanID:       m.PlanID,
		Name:         m.Name,
		FilePath:     m.FilePath,
		DocumentType: domain.DocumentType(m.DocumentType),
		Attached:     m.Attached,
		CreatedAt:    m.CreatedAt,
	}
}
