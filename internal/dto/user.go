package dto

import (
	"time"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/core/selectors"
	"github.com/kushalbajje/expense-management/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateUserRequest defines the data needed to create a new user.
type CreateUserRequest struct {
	FirstName    string `json:"firstName" label:"First name" binding:"required"`
	LastName     string `json:"lastName" label:"Last name" binding:"required"`
	DepartmentID string `json:"departmentID" label:"Department" binding:"required"`
}

// UpdateUserRequest replaces a user's names and department.
type UpdateUserRequest struct {
	FirstName    string `json:"firstName" label:"First name" binding:"required"`
	LastName     string `json:"lastName" label:"Last name" binding:"required"`
	DepartmentID string `json:"departmentID" label:"Department" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID                 string          `json:"userID"`
	FirstName              string          `json:"firstName"`
	LastName               string          `json:"lastName"`
	FullName               string          `json:"fullName"`
	DepartmentID           string          `json:"departmentID"`
	DepartmentName         string          `json:"departmentName,omitempty"`
	TotalSpending          decimal.Decimal `json:"totalSpending"`
	FormattedTotalSpending string          `json:"formattedTotalSpending"`
	ExpenseCount           int             `json:"expenseCount"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

type UserStatsResponse struct {
	TotalUsers    int               `json:"totalUsers"`
	TotalSpending decimal.Decimal   `json:"totalSpending"`
	TotalExpenses int               `json:"totalExpenses"`
	Formatted     map[string]string `json:"formatted"`
}

// ListUsersResponse wraps the loaded pages of users.
type ListUsersResponse struct {
	Users []UserResponse    `json:"users"`
	Stats UserStatsResponse `json:"stats"`
	PageMeta
}

// ToUserResponse converts a domain.User to UserResponse DTO. departmentName
// may be empty when the department is unknown.
func ToUserResponse(u *domain.User, departmentName string) UserResponse {
	return UserResponse{
		UserID:                 u.UserID,
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		FullName:               u.FullName(),
		DepartmentID:           u.DepartmentID,
		DepartmentName:         departmentName,
		TotalSpending:          u.TotalSpending,
		FormattedTotalSpending: utils.FormatCurrency(u.TotalSpending),
		ExpenseCount:           u.ExpenseCount,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

// ToUserResponses converts users, resolving department names through lookup.
func ToUserResponses(users []domain.User, lookup func(departmentID string) string) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i], lookup(users[i].DepartmentID))
	}
	return responses
}

func ToUserStatsResponse(st selectors.UserStats) UserStatsResponse {
	return UserStatsResponse{
		TotalUsers:    st.TotalUsers,
		TotalSpending: st.TotalSpending,
		TotalExpenses: st.TotalExpenses,
		Formatted: map[string]string{
			"totalUsers":    utils.FormatNumber(st.TotalUsers),
			"totalSpending": utils.FormatCurrency(st.TotalSpending),
			"totalExpenses": utils.FormatNumber(st.TotalExpenses),
		},
	}
}
