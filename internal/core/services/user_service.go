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

type userService struct {
	BaseService
}

// NewUserService creates a user service over the given store.
func NewUserService(store portsrepo.StateStoreFacade, options ...Option) portssvc.UserSvcFacade {
	return &userService{BaseService: newBaseService(store, options...)}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, ok := s.store.Snapshot(ctx).Users.Get(userID)
	if !ok {
		return nil, apperrors.NotFoundf("user %s", userID)
	}
	return &user, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListParams) (*dto.ListUsersResponse, error) {
	snap := s.store.Snapshot(ctx)
	view := selectors.SearchUsers(snap, params.Search)
	page, cursor, err := loadPages(view.Items, params, s.pageSize)
	if err != nil {
		s.LogDebug(ctx, "Rejected user list cursor", slog.String("cursor", params.Cursor))
		return nil, err
	}
	return &dto.ListUsersResponse{
		Users: dto.ToUserResponses(page.Items, func(id string) string {
			return selectors.DepartmentName(snap, id)
		}),
		Stats:    dto.ToUserStatsResponse(selectors.SummarizeUsers(view.Items)),
		PageMeta: pageMeta(page, view.IsSearching, cursor),
	}, nil
}

func (s *userService) ListUserExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	snap := s.store.Snapshot(ctx)
	if !snap.Users.Has(userID) {
		return nil, apperrors.NotFoundf("user %s", userID)
	}
	return selectors.ExpensesOfUser(snap, userID), nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if err := validation.ValidateUserData(req.FirstName, req.LastName, req.DepartmentID); err != nil {
		s.LogDebug(ctx, "User data rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	op := reducer.CreateUser{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		DepartmentID: strings.TrimSpace(req.DepartmentID),
	}
	next, res, err := s.dispatch(ctx, op, "user", "departmentID")
	if err != nil {
		return nil, err
	}
	user, _ := next.Users.Get(res.EntityID)
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("department_id", user.DepartmentID))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if !s.store.Snapshot(ctx).Users.Has(userID) {
		return nil, apperrors.NotFoundf("user %s", userID)
	}
	if err := validation.ValidateUserData(req.FirstName, req.LastName, req.DepartmentID); err != nil {
		s.LogDebug(ctx, "User data rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	op := reducer.UpdateUser{
		ID:           userID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		DepartmentID: strings.TrimSpace(req.DepartmentID),
	}
	next, _, err := s.dispatch(ctx, op, "user", "departmentID")
	if err != nil {
		return nil, err
	}
	user, _ := next.Users.Get(userID)
	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return &user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if _, _, err := s.dispatch(ctx, reducer.DeleteUser{ID: userID}, "user", ""); err != nil {
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}
