// Package memory holds the in-process state store. All state is volatile and
// lives for the lifetime of the process.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	portsrepo "github.com/kushalbajje/expense-management/internal/core/ports/repositories"
	"github.com/kushalbajje/expense-management/internal/core/reducer"
)

// StateRepository is the single writer over the expense tracker state.
// Dispatch calls are serialised; readers load the committed snapshot pointer
// without taking the write lock.
type StateRepository struct {
	mu      sync.Mutex
	current atomic.Pointer[domain.Snapshot]
	version atomic.Uint64
	env     reducer.Env
	logger  *slog.Logger
}

// StateOption configures a StateRepository.
type StateOption func(*StateRepository)

// WithIDGenerator overrides the id generator used for new entities.
func WithIDGenerator(fn func() string) StateOption {
	return func(r *StateRepository) { r.env.NewID = fn }
}

// WithClock overrides the clock used for audit timestamps.
func WithClock(fn func() time.Time) StateOption {
	return func(r *StateRepository) { r.env.Now = fn }
}

// WithReferencePolicy selects how dangling references are treated.
func WithReferencePolicy(p reducer.ReferencePolicy) StateOption {
	return func(r *StateRepository) { r.env.Policy = p }
}

// WithLogger sets the logger used for skipped operations.
func WithLogger(l *slog.Logger) StateOption {
	return func(r *StateRepository) { r.logger = l }
}

// WithInitialSnapshot starts the store from a copy of s instead of the empty state.
func WithInitialSnapshot(s *domain.Snapshot) StateOption {
	return func(r *StateRepository) { r.current.Store(s.DeepClone()) }
}

// NewStateRepository creates a store holding the empty snapshot.
func NewStateRepository(opts ...StateOption) *StateRepository {
	r := &StateRepository{env: reducer.DefaultEnv(), logger: slog.Default()}
	r.current.Store(domain.NewSnapshot())
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ portsrepo.StateStoreFacade = (*StateRepository)(nil)

// Snapshot returns the latest committed snapshot.
func (r *StateRepository) Snapshot(_ context.Context) *domain.Snapshot {
	return r.current.Load()
}

// Version returns how many operations have been applied.
func (r *StateRepository) Version(_ context.Context) uint64 {
	return r.version.Load()
}

// Dispatch applies op to the current snapshot. Once the reducer starts the
// operation runs to completion regardless of ctx.
func (r *StateRepository) Dispatch(ctx context.Context, op reducer.Operation) (*domain.Snapshot, domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return r.current.Load(), domain.Result{Op: string(op.Kind())}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.current.Load()
	next, res := reducer.Reduce(prev, op, r.env)
	if !res.Applied() {
		r.logger.DebugContext(ctx, "Operation skipped",
			slog.String("op", res.Op),
			slog.String("status", string(res.Status)),
			slog.String("entity_id", res.EntityID))
		return prev, res, nil
	}

	r.current.Store(next)
	v := r.version.Add(1)
	r.logger.DebugContext(ctx, "Operation applied",
		slog.String("op", res.Op),
		slog.String("entity_id", res.EntityID),
		slog.Uint64("version", v))
	return next, res, nil
}
