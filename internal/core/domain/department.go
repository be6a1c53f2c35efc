package domain

import "github.com/shopspring/decimal"

// Department groups users. UserCount and TotalSpending are denormalized
// aggregates maintained by the state store, never recomputed on read.
type Department struct {
	DepartmentID  string          `json:"departmentID"`
	Name          string          `json:"name"`
	UserCount     int             `json:"userCount"`
	TotalSpending decimal.Decimal `json:"totalSpending"`
	AuditFields
}
