package services

import (
	"context"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/dto"
)

// DepartmentReaderSvc defines read operations for department data
type DepartmentReaderSvc interface {
	// GetDepartmentByID retrieves a department by ID.
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments searches departments and returns the loaded pages with stats.
	ListDepartments(ctx context.Context, params dto.ListParams) (*dto.ListDepartmentsResponse, error)

	// ListDepartmentUsers returns the members of a department in collection order.
	ListDepartmentUsers(ctx context.Context, departmentID string) ([]domain.User, error)
}

// DepartmentWriterSvc defines write operations for department data
type DepartmentWriterSvc interface {
	// CreateDepartment validates the name and creates an empty department.
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*domain.Department, error)

	// UpdateDepartment renames a department.
	UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest) (*domain.Department, error)

	// DeleteDepartment removes a department, first moving its users to
	// reassignTo when it is not empty.
	DeleteDepartment(ctx context.Context, departmentID string, reassignTo string) error
}

// DepartmentSvcFacade combines all department-related service interfaces
type DepartmentSvcFacade interface {
	DepartmentReaderSvc
	DepartmentWriterSvc
}
