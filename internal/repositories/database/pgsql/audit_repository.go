package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/plan_approval_app/internal/models"
	"github.com/SscSPs/plan_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) ListLogsByPlan(ctx context.Context, planID string) ([]domain.LogEntry, error) {
	query := `
		SELECT log_id, plan_id, actor_id, actor_role, target_role, action, from_status, to_status, remarks, created_at
		FROM plan_logs
		WHERE plan_id = $1
		ORDER BY created_at ASC, log_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.LogEntry{}
	for rows.Next() {
		var m models.PlanLog
		if err := rows.Scan(
			&m.LogID,
			&m.PlanID,
			&m.ActorID,
			&m.ActorRole,
			&m.TargetRole,
			&m.Action,
			&m.FromStatus,
			&m.ToStatus,
			&m.Remarks,
			&m.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan log row: %w", err)
		}
		entries = append(entries, mapping.ToDomainLogEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating plan log rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxAuditRepository) CountLogsByPlan(ctx context.Context, planID string) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM plan_logs WHERE plan_id = $1;`, planID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count plan logs: %w", err)
	}
	return count, nil
}

const documentColumns = `document_id, plan_id, name, file_path, document_type, attached, created_at`

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(&m.DocumentID, &m.PlanID, &m.Name, &m.FilePath, &m.DocumentType, &m.Attached, &m.CreatedAt)
	return m, err
}

func (r *PgxAuditRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document " + documentID)
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

func (r *PgxAuditRepository) ListDocumentsByPlan(ctx context.Context, planID string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE plan_id = $1 ORDER BY created_at ASC, document_id ASC;`
	rows, err := r.Pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, mapping.ToDomainDocument(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}
	return docs, nil
}

func (r *PgxAuditRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	return insertDocument(ctx, r.Pool, mapping.ToModelDocument(doc))
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertDocument(ctx context.Context, db execer, m models.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := db.Exec(ctx, query, m.DocumentID, m.PlanID, m.Name, m.FilePath, m.DocumentType, m.Attached, m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, m.DocumentID)
			case "23503": // foreign_key_violation
				return apperrors.NewNotFoundError("plan " + m.PlanID)
			}
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}
