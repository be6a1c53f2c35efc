package memory

import (
	portsrepo "github.com/kushalbajje/expense-management/internal/core/ports/repositories"
)

func NewRepositoryProvider(opts ...StateOption) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StateStore: NewStateRepository(opts...),
	}
}
