package repositories

import (
	"context"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/core/reducer"
)

// StateReader defines read access to the committed state.
type StateReader interface {
	// Snapshot returns the latest committed snapshot. Callers must not mutate it.
	Snapshot(ctx context.Context) *domain.Snapshot

	// Version returns the number of operations applied since the store was created.
	Version(ctx context.Context) uint64
}

// StateWriter defines the single mutation entry point of the store.
type StateWriter interface {
	// Dispatch applies op and returns the resulting snapshot with its result.
	// Skipped operations return the unchanged snapshot and a nil error; err is
	// only set when ctx is done before the operation starts.
	Dispatch(ctx context.Context, op reducer.Operation) (*domain.Snapshot, domain.Result, error)
}

// StateStoreFacade combines all state store interfaces.
type StateStoreFacade interface {
	StateReader
	StateWriter
}
