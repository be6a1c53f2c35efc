package reducer

import (
	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpKind names an operation for logging and results.
type OpKind string

const (
	KindCreateDepartment OpKind = "CREATE_DEPARTMENT"
	KindUpdateDepartment OpKind = "UPDATE_DEPARTMENT"
	KindDeleteDepartment OpKind = "DELETE_DEPARTMENT"
	KindCreateUser       OpKind = "CREATE_USER"
	KindUpdateUser       OpKind = "UPDATE_USER"
	KindDeleteUser       OpKind = "DELETE_USER"
	KindCreateExpense    OpKind = "CREATE_EXPENSE"
	KindUpdateExpense    OpKind = "UPDATE_EXPENSE"
	KindDeleteExpense    OpKind = "DELETE_EXPENSE"
	KindLoadBulkData     OpKind = "LOAD_BULK_DATA"
	KindReset            OpKind = "RESET_DATA"
)

// Operation is the closed set of mutations the store accepts.
type Operation interface {
	Kind() OpKind
	sealed()
}

type CreateDepartment struct {
	Name string
}

type UpdateDepartment struct {
	ID   string
	Name string
}

// DeleteDepartment removes a department. When ReassignTo is non-empty the
// department's users move there first.
type DeleteDepartment struct {
	ID         string
	ReassignTo string
}

type CreateUser struct {
	FirstName    string
	LastName     string
	DepartmentID string
}

type UpdateUser struct {
	ID           string
	FirstName    string
	LastName     string
	DepartmentID string
}

// DeleteUser removes a user together with every expense the user owns.
type DeleteUser struct {
	ID string
}

type CreateExpense struct {
	UserID      string
	Category    domain.ExpenseCategory
	Description string
	Cost        decimal.Decimal
}

type UpdateExpense struct {
	ID          string
	UserID      string
	Category    domain.ExpenseCategory
	Description string
	Cost        decimal.Decimal
}

type DeleteExpense struct {
	ID string
}

// LoadBulkData replaces the whole state with Snapshot.
type LoadBulkData struct {
	Snapshot *domain.Snapshot
}

// Reset replaces the whole state with the empty snapshot.
type Reset struct{}

func (CreateDepartment) Kind() OpKind { return KindCreateDepartment }
func (UpdateDepartment) Kind() OpKind { return KindUpdateDepartment }
func (DeleteDepartment) Kind() OpKind { return KindDeleteDepartment }
func (CreateUser) Kind() OpKind       { return KindCreateUser }
func (UpdateUser) Kind() OpKind       { return KindUpdateUser }
func (DeleteUser) Kind() OpKind       { return KindDeleteUser }
func (CreateExpense) Kind() OpKind    { return KindCreateExpense }
func (UpdateExpense) Kind() OpKind    { return KindUpdateExpense }
func (DeleteExpense) Kind() OpKind    { return KindDeleteExpense }
func (LoadBulkData) Kind() OpKind     { return KindLoadBulkData }
func (Reset) Kind() OpKind            { return KindReset }

func (CreateDepartment) sealed() {}
func (UpdateDepartment) sealed() {}
func (DeleteDepartment) sealed() {}
func (CreateUser) sealed()       {}
func (UpdateUser) sealed()       {}
func (DeleteUser) sealed()       {}
func (CreateExpense) sealed()    {}
func (UpdateExpense) sealed()    {}
func (DeleteExpense) sealed()    {}
func (LoadBulkData) sealed()     {}
func (Reset) sealed()            {}
