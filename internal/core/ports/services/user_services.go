package services

import (
	"context"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers searches users and returns the loaded pages with stats.
	ListUsers(ctx context.Context, params dto.ListParams) (*dto.ListUsersResponse, error)

	// ListUserExpenses returns the expenses a user owns in collection order.
	ListUserExpenses(ctx context.Context, userID string) ([]domain.Expense, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user in a department.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser replaces a user's names and department.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes a user and every expense the user owns.
	DeleteUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
