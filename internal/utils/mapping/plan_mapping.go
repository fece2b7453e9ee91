package mapping

import (
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/models"
)

// ToModelPlan converts a domain Plan to a model Plan
func ToModelPlan(d domain.Plan) models.Plan {
	return models.Plan{
		PlanID:        d.PlanID,
		ApplicantName: d.ApplicantName,
		PlotNo:        d.PlotNo,
		PlotArea:      d.PlotArea,
		ReferenceNo:   ToNullString(d.ReferenceNo),
		Status:        string(d.Status),
		Remarks:       ToNullString(d.Remarks),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlan converts a model Plan to a domain Plan
func ToDomainPlan(m models.Plan) domain.Plan {
	return domain.Plan{
		PlanID:        m.PlanID,
		ApplicantName: m.ApplicantName,
		PlotNo:        m.PlotNo,
		PlotArea:      m.PlotArea,
		ReferenceNo:   FromNullString(m.ReferenceNo),
		Status:        domain.PlanStatus(m.Status),
		Remarks:       FromNullString(m.Remarks),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPlanSlice converts a slice of model Plans to a slice of domain Plans
func ToDomainPlanSlice(ms []models.Plan) []domain.Plan {
	ds := make([]domain.Plan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlan(m)
	}
	return ds
}
