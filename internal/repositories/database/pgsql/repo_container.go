package pgsql

import (
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PlanRepo:    newPgxPlanRepository(dbPool),
		AuditRepo:   newPgxAuditRepository(dbPool),
		MessageRepo: newPgxMessageRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
	}
}
