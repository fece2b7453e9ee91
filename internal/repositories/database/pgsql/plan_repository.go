package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/plan_approval_app/internal/models"
	"github.com/SscSPs/plan_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPlanRepository struct {
	BaseRepository
}

func newPgxPlanRepository(pool *pgxpool.Pool) portsrepo.PlanRepositoryFacade {
	return &PgxPlanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPlanRepository implements portsrepo.PlanRepositoryFacade
var _ portsrepo.PlanRepositoryFacade = (*PgxPlanRepository)(nil)

const planColumns = `plan_id, applicant_name, plot_no, plot_area, reference_no, status, remarks,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPlan(row pgx.Row) (models.Plan, error) {
	var m models.Plan
	err := row.Scan(
		&m.PlanID,
		&m.ApplicantName,
		&m.PlotNo,
		&m.PlotArea,
		&m.ReferenceNo,
		&m.Status,
		&m.Remarks,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = $1;`
	m, err := scanPlan(r.Pool.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("plan " + planID)
		}
		return nil, fmt.Errorf("failed to find plan by ID %s: %w", planID, err)
	}
	plan := mapping.ToDomainPlan(m)
	return &plan, nil
}

func (r *PgxPlanRepository) ListPlansByStatus(ctx context.Context, status domain.PlanStatus) ([]domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE status = $1 ORDER BY created_at ASC, plan_id ASC;`
	return r.queryPlans(ctx, query, string(status))
}

func (r *PgxPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at ASC, plan_id ASC;`
	return r.queryPlans(ctx, query)
}

func (r *PgxPlanRepository) queryPlans(ctx context.Context, query string, args ...any) ([]domain.Plan, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	modelPlans := []models.Plan{}
	for rows.Next() {
		m, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		modelPlans = append(modelPlans, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", rows.Err())
	}
	return mapping.ToDomainPlanSlice(modelPlans), nil
}

func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	m := mapping.ToModelPlan(plan)
	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PlanID,
		m.ApplicantName,
		m.PlotNo,
		m.PlotArea,
		m.ReferenceNo,
		m.Status,
		m.Remarks,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: plan %s", apperrors.ErrDuplicate, plan.PlanID)
		}
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

func (r *PgxPlanRepository) AssignReferenceNo(ctx context.Context, planID string, referenceNo string, updatedBy string) error {
	query := `
		UPDATE plans
		SET reference_no = $1, last_updated_at = $2, last_updated_by = $3
		WHERE plan_id = $4 AND reference_no IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, referenceNo, time.Now(), updatedBy, planID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reference number %s", apperrors.ErrDuplicate, referenceNo)
		}
		return fmt.Errorf("failed to assign reference number: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM plans WHERE plan_id = $1);`, planID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check plan %s: %w", planID, err)
		}
		if !exists {
			return apperrors.NewNotFoundError("plan " + planID)
		}
		return apperrors.NewConflictError("plan " + planID + " already has a reference number")
	}
	return nil
}

// ApplyStatusChange runs the conditioned update, the log insert and the document insert
// in one database transaction.
func (r *PgxPlanRepository) ApplyStatusChange(ctx context.Context, change domain.StatusChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	updateQuery := `
		UPDATE plans
		SET status = $1, remarks = $2, last_updated_at = $3, last_updated_by = $4
		WHERE plan_id = $5 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		string(change.NewStatus),
		mapping.ToNullString(change.Remarks),
		change.UpdatedAt,
		change.UpdatedBy,
		change.PlanID,
		string(change.ExpectedStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to update plan status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.explainMissedUpdate(ctx, tx, change.PlanID, change.ExpectedStatus)
	}

	logModel := mapping.ToModelPlanLog(change.Log)
	logQuery := `
		INSERT INTO plan_logs (log_id, plan_id, actor_id, actor_role, target_role, action, from_status, to_status, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, logQuery,
		logModel.LogID,
		logModel.PlanID,
		logModel.ActorID,
		logModel.ActorRole,
		logModel.TargetRole,
		logModel.Action,
		logModel.FromStatus,
		logModel.ToStatus,
		logModel.Remarks,
		logModel.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan log: %w", err)
	}

	if change.Document != nil {
		if err := insertDocument(ctx, tx, mapping.ToModelDocument(*change.Document)); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// explainMissedUpdate tells a vanished plan apart from a stale expected status.
func (r *PgxPlanRepository) explainMissedUpdate(ctx context.Context, q rowQuerier, planID string, expected domain.PlanStatus) error {
	var current string
	err := q.QueryRow(ctx, `SELECT status FROM plans WHERE plan_id = $1;`, planID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("plan " + planID)
		}
		return fmt.Errorf("failed to read plan status %s: %w", planID, err)
	}
	return apperrors.NewConflictError(fmt.Sprintf("plan %s is %q, expected %q", planID, current, expected))
}
