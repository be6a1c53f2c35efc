package dto

import (
	"time"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/core/selectors"
	"github.com/kushalbajje/expense-management/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateDepartmentRequest defines the data needed to create a new department.
type CreateDepartmentRequest struct {
	Name string `json:"name" label:"Department name" binding:"required"`
}

// UpdateDepartmentRequest defines the data for renaming a department.
type UpdateDepartmentRequest struct {
	Name string `json:"name" label:"Department name" binding:"required"`
}

// DeleteDepartmentParams carries the optional reassignment target for a deletion.
type DeleteDepartmentParams struct {
	ReassignTo string `form:"reassignTo"`
}

// DepartmentResponse defines the data returned for a department.
type DepartmentResponse struct {
	DepartmentID           string          `json:"departmentID"`
	Name                   string          `json:"name"`
	UserCount              int             `json:"userCount"`
	TotalSpending          decimal.Decimal `json:"totalSpending"`
	FormattedTotalSpending string          `json:"formattedTotalSpending"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

type DepartmentStatsResponse struct {
	TotalDepartments int               `json:"totalDepartments"`
	TotalUsers       int               `json:"totalUsers"`
	TotalSpending    decimal.Decimal   `json:"totalSpending"`
	Formatted        map[string]string `json:"formatted"`
}

// ListDepartmentsResponse wraps the loaded pages of departments.
type ListDepartmentsResponse struct {
	Departments []DepartmentResponse    `json:"departments"`
	Stats       DepartmentStatsResponse `json:"stats"`
	PageMeta
}

// ToDepartmentResponse converts a domain.Department to DepartmentResponse DTO.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID:           d.DepartmentID,
		Name:                   d.Name,
		UserCount:              d.UserCount,
		TotalSpending:          d.TotalSpending,
		FormattedTotalSpending: utils.FormatCurrency(d.TotalSpending),
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}

// ToDepartmentResponses converts a slice of domain.Department to []DepartmentResponse.
func ToDepartmentResponses(depts []domain.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, len(depts))
	for i := range depts {
		responses[i] = ToDepartmentResponse(&depts[i])
	}
	return responses
}

func ToDepartmentStatsResponse(st selectors.DepartmentStats) DepartmentStatsResponse {
	return DepartmentStatsResponse{
		TotalDepartments: st.TotalDepartments,
		TotalUsers:       st.TotalUsers,
		TotalSpending:    st.TotalSpending,
		Formatted: map[string]string{
			"totalDepartments": utils.FormatNumber(st.TotalDepartments),
			"totalUsers":       utils.FormatNumber(st.TotalUsers),
			"totalSpending":    utils.FormatCurrency(st.TotalSpending),
		},
	}
}
