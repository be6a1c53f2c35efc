package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kushalbajje/expense-management/internal/apperrors"
	"github.com/kushalbajje/expense-management/internal/core/domain"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/dto"
	"github.com/kushalbajje/expense-management/internal/handlers"
	"github.com/kushalbajje/expense-management/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	departments *MockDepartmentService
	users       *MockUserService
	expenses    *MockExpenseService
	dataset     *MockDatasetService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.departments = new(MockDepartmentService)
	suite.users = new(MockUserService)
	suite.expenses = new(MockExpenseService)
	suite.dataset = new(MockDatasetService)

	suite.router = gin.New()
	cfg := &config.Config{IsProduction: true}
	err := handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Department: suite.departments,
		User:       suite.users,
		Expense:    suite.expenses,
		Dataset:    suite.dataset,
	})
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.departments.AssertExpectations(suite.T())
	suite.users.AssertExpectations(suite.T())
	suite.expenses.AssertExpectations(suite.T())
	suite.dataset.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var fixedTime = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateDepartment_Success() {
	req := dto.CreateDepartmentRequest{Name: "Engineering"}
	created := &domain.Department{
		DepartmentID:  "d1",
		Name:          "Engineering",
		TotalSpending: decimal.Zero,
		AuditFields:   domain.NewAuditFields(fixedTime),
	}
	suite.departments.On("CreateDepartment", mock.Anything, req).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/departments", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.DepartmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("d1", resp.DepartmentID)
	suite.Equal("$0.00", resp.FormattedTotalSpending)
}

func (suite *HandlerTestSuite) TestCreateDepartment_MissingName() {
	w := suite.do(http.MethodPost, "/api/v1/departments", `{}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("Department name is required", resp.Error)
	suite.Equal("Department name", resp.Field)
}

func (suite *HandlerTestSuite) TestCreateDepartment_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/v1/departments", `{"name":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("body", resp.Field)
	suite.True(strings.HasPrefix(resp.Error, "Invalid request body"))
}

func (suite *HandlerTestSuite) TestCreateDepartment_DuplicateName() {
	req := dto.CreateDepartmentRequest{Name: "engineering"}
	suite.departments.On("CreateDepartment", mock.Anything, req).
		Return(nil, apperrors.NewValidationError("Department name", "Department name must be unique")).Once()

	w := suite.do(http.MethodPost, "/api/v1/departments", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Department name must be unique", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestCreateDepartment_NameTakenConcurrently() {
	req := dto.CreateDepartmentRequest{Name: "Engineering"}
	suite.departments.On("CreateDepartment", mock.Anything, req).
		Return(nil, fmt.Errorf("department name is already used by department d1: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/departments", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.decodeError(w).Error, "already used")
}

func (suite *HandlerTestSuite) TestGetDepartment_NotFound() {
	suite.departments.On("GetDepartmentByID", mock.Anything, "nope").
		Return(nil, apperrors.NotFoundf("department %s", "nope")).Once()

	w := suite.do(http.MethodGet, "/api/v1/departments/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteDepartment_WithReassignment() {
	suite.departments.On("DeleteDepartment", mock.Anything, "d1", "d2").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/departments/d1?reassignTo=d2", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteDepartment_HasMembers() {
	suite.departments.On("DeleteDepartment", mock.Anything, "d1", "").
		Return(apperrors.NewValidationError("reassignTo", "Department still has users; choose a department to reassign them to")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/departments/d1", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("reassignTo", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestListDepartmentUsers_UsesDepartmentName() {
	suite.departments.On("GetDepartmentByID", mock.Anything, "d1").
		Return(&domain.Department{DepartmentID: "d1", Name: "Finance"}, nil).Once()
	suite.departments.On("ListDepartmentUsers", mock.Anything, "d1").
		Return([]domain.User{{UserID: "u1", FirstName: "Ada", LastName: "Lovelace", DepartmentID: "d1", TotalSpending: decimal.Zero}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/departments/d1/users", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Finance", resp[0].DepartmentName)
	suite.Equal("Ada Lovelace", resp[0].FullName)
}

func (suite *HandlerTestSuite) TestGetUser_ResolvesDepartmentName() {
	suite.users.On("GetUserByID", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", FirstName: "Grace", LastName: "Hopper", DepartmentID: "d9", TotalSpending: decimal.Zero}, nil).Once()
	suite.departments.On("GetDepartmentByID", mock.Anything, "d9").
		Return(nil, apperrors.NotFoundf("department %s", "d9")).Once()

	w := suite.do(http.MethodGet, "/api/v1/users/u1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.DepartmentName, "dangling department renders without a name")
}

func (suite *HandlerTestSuite) TestCreateUser_ShortNameFromService() {
	req := dto.CreateUserRequest{FirstName: "A", LastName: "Lovelace", DepartmentID: "d1"}
	suite.users.On("CreateUser", mock.Anything, req).
		Return(nil, apperrors.NewValidationError("First name", "First name must be at least 2 characters")).Once()

	w := suite.do(http.MethodPost, "/api/v1/users", req)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("First name must be at least 2 characters", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestDeleteUser_NotFound() {
	suite.users.On("DeleteUser", mock.Anything, "u404").Return(apperrors.NotFoundf("user %s", "u404")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/users/u404", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateExpense_InvalidCategory() {
	w := suite.do(http.MethodPost, "/api/v1/expenses", `{"userID":"u1","category":"Travel","description":"Taxi","cost":12}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Category must be one of Supplies, Software, Gas, Food, Other", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestCreateExpense_CostOutOfRange() {
	w := suite.do(http.MethodPost, "/api/v1/expenses", `{"userID":"u1","category":"Gas","description":"Fuel","cost":0}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Cost must be greater than 0", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestCreateExpense_Success() {
	cost := decimal.RequireFromString("49.99")
	suite.expenses.On("CreateExpense", mock.Anything, mock.MatchedBy(func(req dto.CreateExpenseRequest) bool {
		return req.UserID == "u1" && req.Category == domain.CategorySoftware && req.Cost.Equal(cost)
	})).Return(&domain.Expense{
		ExpenseID:   "e1",
		UserID:      "u1",
		Category:    domain.CategorySoftware,
		Description: "IDE license",
		Cost:        cost,
		AuditFields: domain.NewAuditFields(fixedTime),
	}, nil).Once()
	suite.users.On("GetUserByID", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", FirstName: "Linus", LastName: "Torvalds"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses", `{"userID":"u1","category":"Software","description":"IDE license","cost":"49.99"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Linus Torvalds", resp.UserName)
	suite.Equal("$49.99", resp.FormattedCost)
}

func (suite *HandlerTestSuite) TestListExpenses_PassesQuery() {
	params := dto.ListParams{Search: "taxi", Cursor: "abc", LoadNext: true, Sort: "createdAt_desc"}
	suite.expenses.On("ListExpenses", mock.Anything, params).
		Return(&dto.ListExpensesResponse{Expenses: []dto.ExpenseResponse{}, PageMeta: dto.PageMeta{IsSearching: true}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/expenses?search=taxi&cursor=abc&loadNext=true&sort=createdAt_desc", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListExpensesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsSearching)
}

func (suite *HandlerTestSuite) TestListExpenses_UnknownSort() {
	w := suite.do(http.MethodGet, "/api/v1/expenses?sort=cost_asc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Sort must be one of createdAt_desc", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestLoadMockData_EmptyBodyUsesDefaults() {
	suite.dataset.On("LoadMockData", mock.Anything, dto.LoadMockDataRequest{}).
		Return(&dto.DatasetSummaryResponse{Departments: 5, Users: 1000, Expenses: 9876, Version: 1}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dataset/mock", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DatasetSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(9876, resp.Expenses)
}

func (suite *HandlerTestSuite) TestExportSnapshot() {
	snap := domain.NewSnapshot()
	snap.Departments.Put("d1", domain.Department{DepartmentID: "d1", Name: "Ops", TotalSpending: decimal.Zero})
	snap.UsersByDepartment.Ensure("d1")
	suite.dataset.On("ExportSnapshot", mock.Anything).Return(snap).Once()

	w := suite.do(http.MethodGet, "/api/v1/dataset/snapshot", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body["departments"], 1)
	suite.Contains(body["usersByDepartment"], "d1")
}

func (suite *HandlerTestSuite) TestLoadSnapshot_DuplicateIDs() {
	w := suite.do(http.MethodPut, "/api/v1/dataset/snapshot", `{"users":[{"userID":"u1"},{"userID":"u1"}]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("snapshot", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestLoadSnapshot_Installs() {
	suite.dataset.On("LoadSnapshot", mock.Anything, mock.MatchedBy(func(s *domain.Snapshot) bool {
		return s.Departments.Has("d1")
	})).Return(&dto.DatasetSummaryResponse{Departments: 1, Version: 4}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/dataset/snapshot",
		`{"departments":[{"departmentID":"d1","name":"Ops","userCount":0,"totalSpending":"0"}],"usersByDepartment":{"d1":[]}}`)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestReset_UnexpectedError() {
	suite.dataset.On("Reset", mock.Anything).Return(nil, assert.AnError).Once()

	w := suite.do(http.MethodPost, "/api/v1/dataset/reset", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to reset store", suite.decodeError(w).Error)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestRegisterRoutes_AuthEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := "test-secret-key-that-is-long-enough"
	departments := new(MockDepartmentService)
	departments.On("ListDepartments", mock.Anything, dto.ListParams{}).
		Return(&dto.ListDepartmentsResponse{Departments: []dto.DepartmentResponse{}}, nil).Once()

	r := gin.New()
	cfg := &config.Config{IsProduction: true, AuthEnabled: true, JWTSecret: secret, RateLimit: "100-S"}
	require.NoError(t, handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{
		Department: departments,
		User:       new(MockUserService),
		Expense:    new(MockExpenseService),
		Dataset:    new(MockDatasetService),
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	departments.AssertExpectations(t)

	// /health stays public
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRoutes_BadRateLimit(t *testing.T) {
	err := handlers.RegisterRoutes(gin.New(), &config.Config{RateLimit: "lots"}, &portssvc.ServiceContainer{})
	assert.Error(t, err)
}
