package services

import (
	"time"

	portsrepo "github.com/kushalbajje/expense-management/internal/core/ports/repositories"
	"github.com/kushalbajje/expense-management/internal/utils/pagination"
)

// Option is a functional option shared by the service constructors
type Option func(*BaseService)

// WithSimulatedLatency delays every mutation by d before it reaches the store.
func WithSimulatedLatency(d time.Duration) Option {
	return func(s *BaseService) {
		s.latency = d
	}
}

// WithPageSize sets the page size used by list operations.
func WithPageSize(n int) Option {
	return func(s *BaseService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func newBaseService(store portsrepo.StateStoreFacade, options ...Option) BaseService {
	base := BaseService{store: store, pageSize: pagination.DefaultPageSize}
	for _, option := range options {
		option(&base)
	}
	return base
}
