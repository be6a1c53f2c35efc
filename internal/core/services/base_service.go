package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kushalbajje/expense-management/internal/apperrors"
	"github.com/kushalbajje/expense-management/internal/core/domain"
	portsrepo "github.com/kushalbajje/expense-management/internal/core/ports/repositories"
	"github.com/kushalbajje/expense-management/internal/core/reducer"
	"github.com/kushalbajje/expense-management/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	store    portsrepo.StateStoreFacade
	latency  time.Duration
	pageSize int
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// wait sleeps for the configured latency. It returns early with the context
// error if ctx is done first, in which case the caller must not mutate.
func (s *BaseService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// dispatch waits out the simulated latency and then applies op. Skipped
// results come back as errors through resultError.
func (s *BaseService) dispatch(ctx context.Context, op reducer.Operation, entity, refField string) (*domain.Snapshot, domain.Result, error) {
	if err := s.wait(ctx); err != nil {
		return nil, domain.Result{}, fmt.Errorf("%s not applied: %w", op.Kind(), err)
	}
	snap, res, err := s.store.Dispatch(ctx, op)
	if err != nil {
		return nil, res, fmt.Errorf("%s not applied: %w", op.Kind(), err)
	}
	if err := resultError(res, entity, refField); err != nil {
		s.LogDebug(ctx, "Operation rejected by store",
			slog.String("op", res.Op),
			slog.String("status", string(res.Status)),
			slog.String("entity_id", res.EntityID))
		return snap, res, err
	}
	return snap, res, nil
}

// resultError maps a skipped store result to an application error. refField
// names the request field holding the reference that failed to resolve.
func resultError(res domain.Result, entity, refField string) error {
	switch res.Status {
	case domain.StatusApplied:
		return nil
	case domain.StatusNotFound:
		return apperrors.NotFoundf("%s %s", entity, res.EntityID)
	case domain.StatusMissingReference:
		return apperrors.NewValidationError(refField, fmt.Sprintf("Referenced record %s does not exist", res.EntityID))
	case domain.StatusHasMembers:
		return apperrors.NewValidationError("reassignTo", "Department still has users; choose a department to reassign them to")
	case domain.StatusDuplicate:
		return fmt.Errorf("%s name is already used by %s %s: %w", entity, entity, res.EntityID, apperrors.ErrDuplicate)
	case domain.StatusInvalidTarget:
		return apperrors.NewValidationError("reassignTo", "Users cannot be reassigned to the department being deleted")
	default:
		return fmt.Errorf("unexpected store result %q", res.Status)
	}
}
