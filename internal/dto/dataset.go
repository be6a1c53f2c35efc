package dto

// LoadMockDataRequest overrides the configured sample dataset shape. Zero
// values fall back to the configured defaults.
type LoadMockDataRequest struct {
	Departments        []string `json:"departments" binding:"omitempty,dive,required"`
	Users              int      `json:"users" binding:"gte=0,lte=100000"`
	MinExpensesPerUser int      `json:"minExpensesPerUser" binding:"gte=0"`
	MaxExpensesPerUser int      `json:"maxExpensesPerUser" binding:"gte=0,lte=5000"`
	Seed               uint64   `json:"seed"`
}

// DatasetSummaryResponse reports the size of the store after a dataset operation.
type DatasetSummaryResponse struct {
	Departments int    `json:"departments"`
	Users       int    `json:"users"`
	Expenses    int    `json:"expenses"`
	Version     uint64 `json:"version"`
}
