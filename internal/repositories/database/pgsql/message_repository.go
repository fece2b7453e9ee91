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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMessageRepository struct {
	BaseRepository
}

func newPgxMessageRepository(pool *pgxpool.Pool) portsrepo.MessageRepositoryFacade {
	return &PgxMessageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MessageRepositoryFacade = (*PgxMessageRepository)(nil)

func (r *PgxMessageRepository) FindMessageTemplateByName(ctx context.Context, name string) (*domain.MessageTemplate, error) {
	query := `SELECT template_id, name, subject, body FROM message_templates WHERE name = $1;`
	var m models.MessageTemplate
	err := r.Pool.QueryRow(ctx, query, name).Scan(&m.TemplateID, &m.Name, &m.Subject, &m.Body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("message template " + name)
		}
		return nil, fmt.Errorf("failed to find message template %s: %w", name, err)
	}
	tmpl := mapping.ToDomainMessageTemplate(m)
	return &tmpl, nil
}

// SaveMessageTemplate upserts by name; an existing template keeps its ID.
func (r *PgxMessageRepository) SaveMessageTemplate(ctx context.Context, tmpl domain.MessageTemplate) error {
	if tmpl.TemplateID == "" {
		tmpl.TemplateID = uuid.NewString()
	}
	m := mapping.ToModelMessageTemplate(tmpl)
	query := `
		INSERT INTO message_templates (template_id, name, subject, body)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			subject = EXCLUDED.subject,
			body = EXCLUDED.body;
	`
	if _, err := r.Pool.Exec(ctx, query, m.TemplateID, m.Name, m.Subject, m.Body); err != nil {
		return fmt.Errorf("failed to save message template %s: %w", tmpl.Name, err)
	}
	return nil
}

func (r *PgxMessageRepository) SaveMessageLog(ctx context.Context, entry domain.MessageLog) error {
	m := mapping.ToModelMessageLog(entry)
	query := `
		INSERT INTO message_logs (message_log_id, recipient, channel, subject, body, status, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MessageLogID, m.Recipient, m.Channel, m.Subject, m.Body, m.Status, m.Detail, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save message log: %w", err)
	}
	return nil
}

func (r *PgxMessageRepository) ListMessageLogsByRecipient(ctx context.Context, recipient string) ([]domain.MessageLog, error) {
	query := `
		SELECT message_log_id, recipient, channel, subject, body, status, detail, created_at
		FROM message_logs
		WHERE recipient = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to query message logs: %w", err)
	}
	defer rows.Close()

	out := []domain.MessageLog{}
	for rows.Next() {
		var m models.MessageLog
		if err := rows.Scan(&m.MessageLogID, &m.Recipient, &m.Channel, &m.Subject, &m.Body, &m.Status, &m.Detail, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message log row: %w", err)
		}
		out = append(out, mapping.ToDomainMessageLog(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating message log rows: %w", rows.Err())
	}
	return out, nil
}
