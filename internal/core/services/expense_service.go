package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kushalbajje/expense-management/internal/apperrors"
	"github.com/kushalbajje/expense-management/internal/core/domain"
	portsrepo "github.com/kushalbajje/expense-management/internal/core/ports/repositories"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/core/reducer"
	"github.com/kushalbajje/expense-management/internal/core/selectors"
	"github.com/kushalbajje/expense-management/internal/core/validation"
	"github.com/kushalbajje/expense-management/internal/dto"
)

// SortCreatedDesc is the only sort order the expense list accepts.
const SortCreatedDesc = "createdAt_desc"

type expenseService struct {
	BaseService
}

// NewExpenseService creates an expense service over the given store.
func NewExpenseService(store portsrepo.StateStoreFacade, options ...Option) portssvc.ExpenseSvcFacade {
	return &expenseService{BaseService: newBaseService(store, options...)}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, ok := s.store.Snapshot(ctx).Expenses.Get(expenseID)
	if !ok {
		return nil, apperrors.NotFoundf("expense %s", expenseID)
	}
	return &expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListParams) (*dto.ListExpensesResponse, error) {
	snap := s.store.Snapshot(ctx)
	view := selectors.SearchExpenses(snap, params.Search)
	items := view.Items
	if params.Sort == SortCreatedDesc {
		items = selectors.SortExpensesByCreatedDesc(items)
	}

	page, cursor, err := loadPages(items, params, s.pageSize)
	if err != nil {
		s.LogDebug(ctx, "Rejected expense list cursor", slog.String("cursor", params.Cursor))
		return nil, err
	}
	return &dto.ListExpensesResponse{
		Expenses: dto.ToExpenseResponses(page.Items, func(id string) string {
			return selectors.UserFullName(snap, id)
		}),
		Stats:    dto.ToExpenseStatsResponse(selectors.SummarizeExpenses(view.Items)),
		PageMeta: pageMeta(page, view.IsSearching, cursor),
	}, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if err := validation.ValidateExpenseData(req.UserID, req.Category, req.Description, req.Cost); err != nil {
		s.LogDebug(ctx, "Expense data rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	op := reducer.CreateExpense{
		UserID:      strings.TrimSpace(req.UserID),
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Cost:        req.Cost,
	}
	next, res, err := s.dispatch(ctx, op, "expense", "userID")
	if err != nil {
		return nil, err
	}
	expense, _ := next.Expenses.Get(res.EntityID)
	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("user_id", expense.UserID),
		slog.String("cost", expense.Cost.String()))
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	if !s.store.Snapshot(ctx).Expenses.Has(expenseID) {
		return nil, apperrors.NotFoundf("expense %s", expenseID)
	}
	if err := validation.ValidateExpenseData(req.UserID, req.Category, req.Description, req.Cost); err != nil {
		s.LogDebug(ctx, "Expense data rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	op := reducer.UpdateExpense{
		ID:          expenseID,
		UserID:      strings.TrimSpace(req.UserID),
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Cost:        req.Cost,
	}
	next, _, err := s.dispatch(ctx, op, "expense", "userID")
	if err != nil {
		return nil, err
	}
	expense, _ := next.Expenses.Get(expenseID)
	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return &expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	if _, _, err := s.dispatch(ctx, reducer.DeleteExpense{ID: expenseID}, "expense", ""); err != nil {
		return err
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
