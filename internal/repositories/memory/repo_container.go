package memory

import (
	portsrepo "github.com/dealdesk/deal_workflow_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the volatile in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FileRepo: NewFileRepository(),
		UserRepo: NewUserRepository(),
	}
}
