package services

import (
	portsrepo "github.com/kushalbajje/expense-management/internal/core/ports/repositories"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/core/seed"
	"github.com/kushalbajje/expense-management/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	options := []Option{
		WithSimulatedLatency(cfg.SimulatedLatency),
		WithPageSize(cfg.PageSize),
	}

	return &portssvc.ServiceContainer{
		Department: NewDepartmentService(repos.StateStore, options...),
		User:       NewUserService(repos.StateStore, options...),
		Expense:    NewExpenseService(repos.StateStore, options...),
		Dataset:    NewDatasetService(repos.StateStore, SeedOptions(cfg), options...),
	}
}

// SeedOptions builds the sample dataset shape described by cfg.
func SeedOptions(cfg *config.Config) seed.Options {
	opts := seed.DefaultOptions()
	if len(cfg.SeedDepartments) > 0 {
		opts.Departments = cfg.SeedDepartments
	}
	if cfg.SeedUsers > 0 {
		opts.Users = cfg.SeedUsers
	}
	opts.MinExpensesPerUser = cfg.SeedMinExpensesPerUser
	opts.MaxExpensesPerUser = cfg.SeedMaxExpensesPerUser
	opts.Seed = cfg.SeedRandomSeed
	return opts
}
