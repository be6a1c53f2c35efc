package services

import (
	"context"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/dto"
)

// DatasetSvcFacade replaces or inspects the whole store at once.
type DatasetSvcFacade interface {
	// LoadMockData generates a sample dataset and installs it.
	LoadMockData(ctx context.Context, req dto.LoadMockDataRequest) (*dto.DatasetSummaryResponse, error)

	// LoadSnapshot installs s after checking every store invariant.
	LoadSnapshot(ctx context.Context, s *domain.Snapshot) (*dto.DatasetSummaryResponse, error)

	// Reset empties the store.
	Reset(ctx context.Context) (*dto.DatasetSummaryResponse, error)

	// ExportSnapshot returns the committed snapshot. Callers must not mutate it.
	ExportSnapshot(ctx context.Context) *domain.Snapshot

	// Summary reports entity counts and the store version.
	Summary(ctx context.Context) dto.DatasetSummaryResponse
}
