package pgsql

import (
	portsrepo "github.com/dealdesk/deal_workflow_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FileRepo: newPgxFileRepository(dbPool),
		UserRepo: newPgxUserRepository(dbPool),
	}
}
