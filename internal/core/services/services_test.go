package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kushalbajje/expense-management/internal/apperrors"
	"github.com/kushalbajje/expense-management/internal/core/domain"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/core/reducer"
	"github.com/kushalbajje/expense-management/internal/core/seed"
	"github.com/kushalbajje/expense-management/internal/core/services"
	"github.com/kushalbajje/expense-management/internal/dto"
	"github.com/kushalbajje/expense-management/internal/platform/config"
	"github.com/kushalbajje/expense-management/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// newStore returns a store with sequential ids and a clock that advances one
// minute per operation.
func newStore(opts ...memory.StateOption) *memory.StateRepository {
	var mu sync.Mutex
	n := 0
	clock := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	base := []memory.StateOption{
		memory.WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%03d", n)
		}),
		memory.WithClock(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			clock = clock.Add(time.Minute)
			return clock
		}),
	}
	return memory.NewStateRepository(append(base, opts...)...)
}

// --- Test Suite Setup ---

type ServicesTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.StateRepository
	svc   *portssvc.ServiceContainer
}

func (suite *ServicesTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newStore()
	suite.svc = &portssvc.ServiceContainer{
		Department: services.NewDepartmentService(suite.store),
		User:       services.NewUserService(suite.store),
		Expense:    services.NewExpenseService(suite.store, services.WithPageSize(2)),
		Dataset:    services.NewDatasetService(suite.store, seed.DefaultOptions()),
	}
}

func (suite *ServicesTestSuite) createDepartment(name string) *domain.Department {
	dept, err := suite.svc.Department.CreateDepartment(suite.ctx, dto.CreateDepartmentRequest{Name: name})
	suite.Require().NoError(err)
	return dept
}

func (suite *ServicesTestSuite) createUser(first, last, departmentID string) *domain.User {
	user, err := suite.svc.User.CreateUser(suite.ctx, dto.CreateUserRequest{FirstName: first, LastName: last, DepartmentID: departmentID})
	suite.Require().NoError(err)
	return user
}

func (suite *ServicesTestSuite) createExpense(userID, description string, cost int64) *domain.Expense {
	expense, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		UserID:      userID,
		Category:    domain.CategorySoftware,
		Description: description,
		Cost:        decimal.NewFromInt(cost),
	})
	suite.Require().NoError(err)
	return expense
}

// --- Test Cases ---

func (suite *ServicesTestSuite) TestCreateDepartment_TrimsName() {
	dept := suite.createDepartment("  Engineering ")

	suite.Equal("Engineering", dept.Name)
	suite.Zero(dept.UserCount)
	suite.True(dept.TotalSpending.IsZero())

	found, err := suite.svc.Department.GetDepartmentByID(suite.ctx, dept.DepartmentID)
	suite.Require().NoError(err)
	suite.Equal(*dept, *found)
}

func (suite *ServicesTestSuite) TestCreateDepartment_DuplicateName() {
	suite.createDepartment("Engineering")

	dept, err := suite.svc.Department.CreateDepartment(suite.ctx, dto.CreateDepartmentRequest{Name: "engineering"})
	suite.Nil(dept)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Department name must be unique", apperrors.Message(err))
	suite.Equal(uint64(1), suite.store.Version(suite.ctx))
}

func (suite *ServicesTestSuite) TestUpdateDepartment_AllowsCaseChangeOfOwnName() {
	dept := suite.createDepartment("Sales")

	updated, err := suite.svc.Department.UpdateDepartment(suite.ctx, dept.DepartmentID, dto.UpdateDepartmentRequest{Name: "SALES"})
	suite.Require().NoError(err)
	suite.Equal("SALES", updated.Name)
	suite.True(updated.UpdatedAt.After(updated.CreatedAt))
}

func (suite *ServicesTestSuite) TestUpdateDepartment_NotFound() {
	_, err := suite.svc.Department.UpdateDepartment(suite.ctx, "missing", dto.UpdateDepartmentRequest{Name: "Ops"})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ServicesTestSuite) TestDeleteDepartment_RequiresReassignmentWhenPopulated() {
	eng := suite.createDepartment("Engineering")
	ops := suite.createDepartment("Operations")
	user := suite.createUser("Ada", "Lovelace", eng.DepartmentID)
	suite.createExpense(user.UserID, "Laptop stand", 120)

	err := suite.svc.Department.DeleteDepartment(suite.ctx, eng.DepartmentID, "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	err = suite.svc.Department.DeleteDepartment(suite.ctx, eng.DepartmentID, eng.DepartmentID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	err = suite.svc.Department.DeleteDepartment(suite.ctx, eng.DepartmentID, ops.DepartmentID)
	suite.Require().NoError(err)

	target, err := suite.svc.Department.GetDepartmentByID(suite.ctx, ops.DepartmentID)
	suite.Require().NoError(err)
	suite.Equal(1, target.UserCount)
	suite.True(decimal.NewFromInt(120).Equal(target.TotalSpending))

	members, err := suite.svc.Department.ListDepartmentUsers(suite.ctx, ops.DepartmentID)
	suite.Require().NoError(err)
	suite.Require().Len(members, 1)
	suite.Equal(ops.DepartmentID, members[0].DepartmentID)
	suite.NoError(reducer.CheckInvariants(suite.store.Snapshot(suite.ctx)))
}

func (suite *ServicesTestSuite) TestDeleteDepartment_NotFound() {
	err := suite.svc.Department.DeleteDepartment(suite.ctx, "missing", "")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ServicesTestSuite) TestCreateUser_UnknownDepartment() {
	user, err := suite.svc.User.CreateUser(suite.ctx, dto.CreateUserRequest{FirstName: "Ada", LastName: "Lovelace", DepartmentID: "nowhere"})
	suite.Nil(user)

	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Equal("departmentID", vErr.Field)
	suite.Zero(suite.store.Version(suite.ctx))
}

func (suite *ServicesTestSuite) TestCreateUser_ShortName() {
	dept := suite.createDepartment("Finance")

	_, err := suite.svc.User.CreateUser(suite.ctx, dto.CreateUserRequest{FirstName: " A ", LastName: "Lovelace", DepartmentID: dept.DepartmentID})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("First name must be at least 2 characters", apperrors.Message(err))
}

func (suite *ServicesTestSuite) TestUpdateUser_MovesSpendingBetweenDepartments() {
	eng := suite.createDepartment("Engineering")
	hr := suite.createDepartment("HR")
	user := suite.createUser("Grace", "Hopper", eng.DepartmentID)
	suite.createExpense(user.UserID, "Compiler manual", 80)

	updated, err := suite.svc.User.UpdateUser(suite.ctx, user.UserID, dto.UpdateUserRequest{
		FirstName:    "Grace",
		LastName:     "Hopper",
		DepartmentID: hr.DepartmentID,
	})
	suite.Require().NoError(err)
	suite.Equal(hr.DepartmentID, updated.DepartmentID)

	from, _ := suite.svc.Department.GetDepartmentByID(suite.ctx, eng.DepartmentID)
	to, _ := suite.svc.Department.GetDepartmentByID(suite.ctx, hr.DepartmentID)
	suite.Zero(from.UserCount)
	suite.True(from.TotalSpending.IsZero())
	suite.Equal(1, to.UserCount)
	suite.True(decimal.NewFromInt(80).Equal(to.TotalSpending))
}

func (suite *ServicesTestSuite) TestDeleteUser_CascadesExpenses() {
	dept := suite.createDepartment("Marketing")
	user := suite.createUser("Alan", "Turing", dept.DepartmentID)
	expense := suite.createExpense(user.UserID, "Conference pass", 300)

	suite.Require().NoError(suite.svc.User.DeleteUser(suite.ctx, user.UserID))

	_, err := suite.svc.Expense.GetExpenseByID(suite.ctx, expense.ExpenseID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.svc.User.ListUserExpenses(suite.ctx, user.UserID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	after, _ := suite.svc.Department.GetDepartmentByID(suite.ctx, dept.DepartmentID)
	suite.Zero(after.UserCount)
	suite.True(after.TotalSpending.IsZero())
}

func (suite *ServicesTestSuite) TestCreateExpense_RejectsInvalidCost() {
	dept := suite.createDepartment("Sales")
	user := suite.createUser("Alan", "Kay", dept.DepartmentID)

	_, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		UserID:      user.UserID,
		Category:    domain.CategoryFood,
		Description: "Team lunch",
		Cost:        decimal.NewFromInt(1_000_001),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Cost must not exceed 1000000", apperrors.Message(err))
}

func (suite *ServicesTestSuite) TestUpdateExpense_MovesOwner() {
	dept := suite.createDepartment("Sales")
	alice := suite.createUser("Alice", "Smith", dept.DepartmentID)
	bob := suite.createUser("Bob", "Jones", dept.DepartmentID)
	expense := suite.createExpense(alice.UserID, "Client dinner", 90)

	updated, err := suite.svc.Expense.UpdateExpense(suite.ctx, expense.ExpenseID, dto.UpdateExpenseRequest{
		UserID:      bob.UserID,
		Category:    domain.CategoryFood,
		Description: "Client dinner",
		Cost:        decimal.NewFromInt(100),
	})
	suite.Require().NoError(err)
	suite.Equal(bob.UserID, updated.UserID)

	aliceAfter, _ := suite.svc.User.GetUserByID(suite.ctx, alice.UserID)
	bobAfter, _ := suite.svc.User.GetUserByID(suite.ctx, bob.UserID)
	suite.Zero(aliceAfter.ExpenseCount)
	suite.Equal(1, bobAfter.ExpenseCount)
	suite.True(decimal.NewFromInt(100).Equal(bobAfter.TotalSpending))

	deptAfter, _ := suite.svc.Department.GetDepartmentByID(suite.ctx, dept.DepartmentID)
	suite.True(decimal.NewFromInt(100).Equal(deptAfter.TotalSpending))
}

func (suite *ServicesTestSuite) TestListExpenses_SortAndLoadNext() {
	dept := suite.createDepartment("Engineering")
	user := suite.createUser("Linus", "Torvalds", dept.DepartmentID)
	for i := 1; i <= 5; i++ {
		suite.createExpense(user.UserID, fmt.Sprintf("Server rack %d", i), int64(10*i))
	}

	first, err := suite.svc.Expense.ListExpenses(suite.ctx, dto.ListParams{Sort: services.SortCreatedDesc})
	suite.Require().NoError(err)
	suite.Require().Len(first.Expenses, 2)
	suite.Equal("Server rack 5", first.Expenses[0].Description)
	suite.Equal("Linus Torvalds", first.Expenses[0].UserName)
	suite.Equal(5, first.TotalCount)
	suite.Equal(3, first.TotalPages)
	suite.True(first.HasNextPage)
	suite.Equal(5, first.Stats.TotalExpenses)
	suite.Equal("$150.00", first.Stats.Formatted["totalSpending"])

	second, err := suite.svc.Expense.ListExpenses(suite.ctx, dto.ListParams{
		Sort:     services.SortCreatedDesc,
		Cursor:   first.NextCursor,
		LoadNext: true,
	})
	suite.Require().NoError(err)
	suite.Len(second.Expenses, 4)
	suite.Equal("Server rack 2", second.Expenses[3].Description)

	third, err := suite.svc.Expense.ListExpenses(suite.ctx, dto.ListParams{Cursor: second.NextCursor, LoadNext: true})
	suite.Require().NoError(err)
	suite.Len(third.Expenses, 5)
	suite.False(third.HasNextPage)
	suite.Equal("Server rack 1", third.Expenses[0].Description, "insertion order without sort")
}

func (suite *ServicesTestSuite) TestListExpenses_BadCursor() {
	_, err := suite.svc.Expense.ListExpenses(suite.ctx, dto.ListParams{Cursor: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ServicesTestSuite) TestListUsers_Search() {
	eng := suite.createDepartment("Engineering")
	hr := suite.createDepartment("HR")
	suite.createUser("Ada", "Lovelace", eng.DepartmentID)
	suite.createUser("Grace", "Hopper", hr.DepartmentID)

	resp, err := suite.svc.User.ListUsers(suite.ctx, dto.ListParams{Search: "  engin "})
	suite.Require().NoError(err)
	suite.True(resp.IsSearching)
	suite.Require().Len(resp.Users, 1)
	suite.Equal("Ada Lovelace", resp.Users[0].FullName)
	suite.Equal("Engineering", resp.Users[0].DepartmentName)
	suite.Equal(1, resp.Stats.TotalUsers)

	all, err := suite.svc.User.ListUsers(suite.ctx, dto.ListParams{Search: "   "})
	suite.Require().NoError(err)
	suite.False(all.IsSearching)
	suite.Len(all.Users, 2)
}

func (suite *ServicesTestSuite) TestListDepartments_Stats() {
	eng := suite.createDepartment("Engineering")
	suite.createDepartment("HR")
	user := suite.createUser("Ada", "Lovelace", eng.DepartmentID)
	suite.createExpense(user.UserID, "Books", 1234)

	resp, err := suite.svc.Department.ListDepartments(suite.ctx, dto.ListParams{})
	suite.Require().NoError(err)
	suite.Len(resp.Departments, 2)
	suite.Equal(2, resp.Stats.TotalDepartments)
	suite.Equal(1, resp.Stats.TotalUsers)
	suite.Equal("$1,234.00", resp.Stats.Formatted["totalSpending"])
	suite.Equal("$1,234.00", resp.Departments[0].FormattedTotalSpending)
}

func (suite *ServicesTestSuite) TestDataset_LoadMockResetAndReload() {
	summary, err := suite.svc.Dataset.LoadMockData(suite.ctx, dto.LoadMockDataRequest{
		Users:              20,
		MinExpensesPerUser: 1,
		MaxExpensesPerUser: 3,
		Seed:               42,
	})
	suite.Require().NoError(err)
	suite.Equal(5, summary.Departments)
	suite.Equal(20, summary.Users)
	suite.GreaterOrEqual(summary.Expenses, 20)
	suite.NoError(reducer.CheckInvariants(suite.svc.Dataset.ExportSnapshot(suite.ctx)))

	exported := suite.svc.Dataset.ExportSnapshot(suite.ctx).DeepClone()

	reset, err := suite.svc.Dataset.Reset(suite.ctx)
	suite.Require().NoError(err)
	suite.Zero(reset.Departments + reset.Users + reset.Expenses)

	reloaded, err := suite.svc.Dataset.LoadSnapshot(suite.ctx, exported)
	suite.Require().NoError(err)
	suite.Equal(summary.Expenses, reloaded.Expenses)
	suite.True(exported.Equal(suite.svc.Dataset.ExportSnapshot(suite.ctx)))
	suite.Equal(uint64(3), reloaded.Version)
}

func (suite *ServicesTestSuite) TestDataset_RejectsInconsistentSnapshot() {
	snap := domain.NewSnapshot()
	snap.Departments.Put("d1", domain.Department{DepartmentID: "d1", Name: "Ghost", UserCount: 4, TotalSpending: decimal.Zero})
	snap.UsersByDepartment.Ensure("d1")

	_, err := suite.svc.Dataset.LoadSnapshot(suite.ctx, snap)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.store.Version(suite.ctx))
}

func (suite *ServicesTestSuite) TestDataset_RejectsBadMockOptions() {
	_, err := suite.svc.Dataset.LoadMockData(suite.ctx, dto.LoadMockDataRequest{MinExpensesPerUser: 9, MaxExpensesPerUser: 2})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

// --- Mocked store ---

func TestDispatch_LatencyHonoursCancellation(t *testing.T) {
	store := new(MockStateStore)
	store.On("Snapshot", mock.Anything).Return(domain.NewSnapshot())
	svc := services.NewDepartmentService(store, services.WithSimulatedLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dept, err := svc.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Engineering"})
	assert.Nil(t, dept)
	assert.ErrorIs(t, err, context.Canceled)
	store.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestDispatch_LatencyElapses(t *testing.T) {
	store := newStore()
	svc := services.NewDepartmentService(store, services.WithSimulatedLatency(5*time.Millisecond))

	start := time.Now()
	_, err := svc.CreateDepartment(context.Background(), dto.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestDispatch_StoreErrorPropagates(t *testing.T) {
	store := new(MockStateStore)
	storeErr := errors.New("store closed")
	store.On("Dispatch", mock.Anything, reducer.DeleteExpense{ID: "e1"}).
		Return(nil, domain.Result{}, storeErr).Once()
	svc := services.NewExpenseService(store)

	err := svc.DeleteExpense(context.Background(), "e1")
	assert.ErrorIs(t, err, storeErr)
	store.AssertExpectations(t)
}

func TestDispatch_ResultStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status domain.ResultStatus
		target error
	}{
		{"not found", domain.StatusNotFound, apperrors.ErrNotFound},
		{"missing reference", domain.StatusMissingReference, apperrors.ErrValidation},
		{"has members", domain.StatusHasMembers, apperrors.ErrValidation},
		{"invalid target", domain.StatusInvalidTarget, apperrors.ErrValidation},
		{"duplicate", domain.StatusDuplicate, apperrors.ErrDuplicate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := new(MockStateStore)
			snap := domain.NewSnapshot()
			store.On("Dispatch", mock.Anything, mock.AnythingOfType("reducer.DeleteDepartment")).
				Return(snap, domain.Result{Op: string(reducer.KindDeleteDepartment), Status: tc.status, EntityID: "d1"}, nil).Once()
			svc := services.NewDepartmentService(store)

			err := svc.DeleteDepartment(context.Background(), "d1", "d2")
			assert.ErrorIs(t, err, tc.target)
			store.AssertExpectations(t)
		})
	}
}

func TestCreateDepartment_ConcurrentSameNameCommitsOnce(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	svc := services.NewDepartmentService(store, services.WithSimulatedLatency(20*time.Millisecond))

	const callers = 4
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Engineering"})
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	}
	assert.Equal(t, 1, created)

	snap := store.Snapshot(ctx)
	assert.Equal(t, 1, snap.Departments.Len())
	require.NoError(t, reducer.CheckInvariants(snap))
}

func TestUpdateDepartment_ConcurrentRenameToSameName(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	svc := services.NewDepartmentService(store, services.WithSimulatedLatency(20*time.Millisecond))

	a, err := svc.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Sales"})
	require.NoError(t, err)
	b, err := svc.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Marketing"})
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, id := range []string{a.DepartmentID, b.DepartmentID} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.UpdateDepartment(ctx, id, dto.UpdateDepartmentRequest{Name: "Growth"})
		}()
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
			assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		}
	}
	assert.Equal(t, 1, failures)
	require.NoError(t, reducer.CheckInvariants(store.Snapshot(ctx)))
}

func TestSeedOptionsFromConfig(t *testing.T) {
	opts := services.SeedOptions(&configFixture)
	assert.Equal(t, []string{"Ops", "Legal"}, opts.Departments)
	assert.Equal(t, 12, opts.Users)
	assert.Equal(t, 1, opts.MinExpensesPerUser)
	assert.Equal(t, 4, opts.MaxExpensesPerUser)
	assert.Equal(t, uint64(7), opts.Seed)
}

var configFixture = config.Config{
	SeedDepartments:        []string{"Ops", "Legal"},
	SeedUsers:              12,
	SeedMinExpensesPerUser: 1,
	SeedMaxExpensesPerUser: 4,
	SeedRandomSeed:         7,
}
