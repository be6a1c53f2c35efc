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

type departmentService struct {
	BaseService
}

// NewDepartmentService creates a department service over the given store.
func NewDepartmentService(store portsrepo.StateStoreFacade, options ...Option) portssvc.DepartmentSvcFacade {
	return &departmentService{BaseService: newBaseService(store, options...)}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	dept, ok := s.store.Snapshot(ctx).Departments.Get(departmentID)
	if !ok {
		return nil, apperrors.NotFoundf("department %s", departmentID)
	}
	return &dept, nil
}

func (s *departmentService) ListDepartments(ctx context.Context, params dto.ListParams) (*dto.ListDepartmentsResponse, error) {
	view := selectors.SearchDepartments(s.store.Snapshot(ctx), params.Search)
	page, cursor, err := loadPages(view.Items, params, s.pageSize)
	if err != nil {
		s.LogDebug(ctx, "Rejected department list cursor", slog.String("cursor", params.Cursor))
		return nil, err
	}
	return &dto.ListDepartmentsResponse{
		Departments: dto.ToDepartmentResponses(page.Items),
		Stats:       dto.ToDepartmentStatsResponse(selectors.SummarizeDepartments(view.Items)),
		PageMeta:    pageMeta(page, view.IsSearching, cursor),
	}, nil
}

func (s *departmentService) ListDepartmentUsers(ctx context.Context, departmentID string) ([]domain.User, error) {
	snap := s.store.Snapshot(ctx)
	if !snap.Departments.Has(departmentID) {
		return nil, apperrors.NotFoundf("department %s", departmentID)
	}
	return selectors.UsersInDepartment(snap, departmentID), nil
}

func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*domain.Department, error) {
	snap := s.store.Snapshot(ctx)
	if err := validation.ValidateDepartmentName(req.Name, departmentNames(snap), ""); err != nil {
		s.LogDebug(ctx, "Department name rejected", slog.String("name", req.Name), slog.String("reason", err.Error()))
		return nil, err
	}

	next, res, err := s.dispatch(ctx, reducer.CreateDepartment{Name: strings.TrimSpace(req.Name)}, "department", "name")
	if err != nil {
		return nil, err
	}
	dept, _ := next.Departments.Get(res.EntityID)
	s.LogInfo(ctx, "Department created", slog.String("department_id", dept.DepartmentID), slog.String("name", dept.Name))
	return &dept, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest) (*domain.Department, error) {
	snap := s.store.Snapshot(ctx)
	current, ok := snap.Departments.Get(departmentID)
	if !ok {
		return nil, apperrors.NotFoundf("department %s", departmentID)
	}
	if err := validation.ValidateDepartmentName(req.Name, departmentNames(snap), current.Name); err != nil {
		s.LogDebug(ctx, "Department name rejected", slog.String("name", req.Name), slog.String("reason", err.Error()))
		return nil, err
	}

	next, _, err := s.dispatch(ctx, reducer.UpdateDepartment{ID: departmentID, Name: strings.TrimSpace(req.Name)}, "department", "name")
	if err != nil {
		return nil, err
	}
	dept, _ := next.Departments.Get(departmentID)
	s.LogInfo(ctx, "Department updated", slog.String("department_id", departmentID))
	return &dept, nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, departmentID string, reassignTo string) error {
	op := reducer.DeleteDepartment{ID: departmentID, ReassignTo: strings.TrimSpace(reassignTo)}
	if _, _, err := s.dispatch(ctx, op, "department", "reassignTo"); err != nil {
		return err
	}
	s.LogInfo(ctx, "Department deleted",
		slog.String("department_id", departmentID),
		slog.String("reassign_to", op.ReassignTo))
	return nil
}

func departmentNames(snap *domain.Snapshot) []string {
	names := make([]string, 0, snap.Departments.Len())
	snap.Departments.Each(func(_ string, d domain.Department) bool {
		names = append(names, d.Name)
		return true
	})
	return names
}
