package dto

import (
	"time"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest defines the data needed to register a new plan at intake.
type CreatePlanRequest struct {
	ApplicantName string          `json:"applicantName" binding:"required,max=200"`
	PlotNo        string          `json:"plotNo" binding:"required,max=50"`
	PlotArea      decimal.Decimal `json:"plotArea" binding:"required" swaggertype:"string" example:"250.50"`
}

// AssignReferenceRequest sets a plan's reference number.
type AssignReferenceRequest struct {
	ReferenceNo string `json:"referenceNo" binding:"required,max=64"`
}

// ListPlansParams defines query parameters for listing plans.
type ListPlansParams struct {
	Status string `form:"status" binding:"omitempty,planstatus"`
}

// PlanResponse defines the data returned for a plan.
type PlanResponse struct {
	PlanID        string          `json:"planID"`
	ApplicantName string          `json:"applicantName"`
	PlotNo        string          `json:"plotNo"`
	PlotArea      decimal.Decimal `json:"plotArea" swaggertype:"string"`
	ReferenceNo   *string         `json:"referenceNo"`
	Status        string          `json:"status"`
	Remarks       *string         `json:"remarks"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListPlansResponse wraps a list of plans.
type ListPlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// ToPlanResponse converts a domain.Plan to PlanResponse DTO
func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		PlanID:        p.PlanID,
		ApplicantName: p.ApplicantName,
		PlotNo:        p.PlotNo,
		PlotArea:      p.PlotArea,
		ReferenceNo:   p.ReferenceNo,
		Status:        string(p.Status),
		Remarks:       p.Remarks,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListPlansResponse converts a slice of domain.Plan to ListPlansResponse DTO
func ToListPlansResponse(plans []domain.Plan) ListPlansResponse {
	res := make([]PlanResponse, len(plans))
	for i := range plans {
		res[i] = ToPlanResponse(&plans[i])
	}
	return ListPlansResponse{Plans: res}
}
