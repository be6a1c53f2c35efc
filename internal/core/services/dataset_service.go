package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kushalbajje/expense-management/internal/apperrors"
	"github.com/kushalbajje/expense-management/internal/core/domain"
	portsrepo "github.com/kushalbajje/expense-management/internal/core/ports/repositories"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/core/reducer"
	"github.com/kushalbajje/expense-management/internal/core/seed"
	"github.com/kushalbajje/expense-management/internal/dto"
)

type datasetService struct {
	BaseService
	defaults seed.Options
}

// NewDatasetService creates a dataset service. defaults shapes LoadMockData
// when a request leaves a field at its zero value.
func NewDatasetService(store portsrepo.StateStoreFacade, defaults seed.Options, options ...Option) portssvc.DatasetSvcFacade {
	return &datasetService{BaseService: newBaseService(store, options...), defaults: defaults}
}

var _ portssvc.DatasetSvcFacade = (*datasetService)(nil)

func (s *datasetService) LoadMockData(ctx context.Context, req dto.LoadMockDataRequest) (*dto.DatasetSummaryResponse, error) {
	opts := s.defaults
	if len(req.Departments) > 0 {
		opts.Departments = req.Departments
	}
	if req.Users > 0 {
		opts.Users = req.Users
	}
	if req.MinExpensesPerUser > 0 || req.MaxExpensesPerUser > 0 {
		opts.MinExpensesPerUser = req.MinExpensesPerUser
		opts.MaxExpensesPerUser = req.MaxExpensesPerUser
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	opts.Now = time.Now().UTC()

	start := time.Now()
	snap, err := seed.Generate(opts)
	if err != nil {
		return nil, apperrors.NewValidationError("options", err.Error())
	}
	s.LogDebug(ctx, "Sample dataset generated",
		slog.Int("departments", snap.Departments.Len()),
		slog.Int("users", snap.Users.Len()),
		slog.Int("expenses", snap.Expenses.Len()),
		slog.Duration("took", time.Since(start)))

	if _, _, err := s.dispatch(ctx, reducer.LoadBulkData{Snapshot: snap}, "dataset", ""); err != nil {
		return nil, err
	}
	summary := s.Summary(ctx)
	s.LogInfo(ctx, "Sample dataset loaded", slog.Int("expenses", summary.Expenses), slog.Uint64("version", summary.Version))
	return &summary, nil
}

func (s *datasetService) LoadSnapshot(ctx context.Context, snap *domain.Snapshot) (*dto.DatasetSummaryResponse, error) {
	if snap == nil {
		return nil, apperrors.NewValidationError("snapshot", "Snapshot is required")
	}
	if err := reducer.CheckInvariants(snap); err != nil {
		s.LogError(ctx, err, "Rejected inconsistent snapshot")
		return nil, apperrors.NewValidationError("snapshot", fmt.Sprintf("Snapshot is inconsistent: %v", err))
	}
	if _, _, err := s.dispatch(ctx, reducer.LoadBulkData{Snapshot: snap}, "dataset", ""); err != nil {
		return nil, err
	}
	summary := s.Summary(ctx)
	s.LogInfo(ctx, "Snapshot loaded", slog.Int("expenses", summary.Expenses), slog.Uint64("version", summary.Version))
	return &summary, nil
}

func (s *datasetService) Reset(ctx context.Context) (*dto.DatasetSummaryResponse, error) {
	if _, _, err := s.dispatch(ctx, reducer.Reset{}, "dataset", ""); err != nil {
		return nil, err
	}
	summary := s.Summary(ctx)
	s.LogInfo(ctx, "Store reset", slog.Uint64("version", summary.Version))
	return &summary, nil
}

func (s *datasetService) ExportSnapshot(ctx context.Context) *domain.Snapshot {
	return s.store.Snapshot(ctx)
}

func (s *datasetService) Summary(ctx context.Context) dto.DatasetSummaryResponse {
	snap := s.store.Snapshot(ctx)
	return dto.DatasetSummaryResponse{
		Departments: snap.Departments.Len(),
		Users:       snap.Users.Len(),
		Expenses:    snap.Expenses.Len(),
		Version:     s.store.Version(ctx),
	}
}
