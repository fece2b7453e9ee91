package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Plan is the row stored in the plans table.
type Plan struct {
	PlanID        string          `db:"plan_id"`
	ApplicantName string          `db:"applicant_name"`
	PlotNo        string          `db:"plot_no"`
	PlotArea      decimal.Decimal `db:"plot_area"`
	ReferenceNo   sql.NullString  `db:"reference_no"`
	Status        string          `db:"status"`
	Remarks       sql.NullString  `db:"remarks"`
	AuditFields
}
