package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
	"github.com/anyulbade/retail-sales-dashboard/internal/query"
)

// Store is the read contract shared by SalesRepository and MemoryStore.
type Store interface {
	Count(ctx context.Context, p query.Predicate) (int, error)
	Find(ctx context.Context, p query.Predicate, sortKey query.SortKey, skip, limit int) ([]model.Transaction, error)
	Aggregate(ctx context.Context, p query.Predicate) (model.Metrics, error)
	Facets(ctx context.Context) (model.Facets, error)
}

// BreakerStore fails fast once the wrapped store keeps erroring. It never
// retries; an open breaker is returned to the caller as an ordinary error.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerStore(name string, next Store) *BreakerStore {
	return &BreakerStore{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 5 && failureRatio >= 0.6
			},
			// a caller hanging up says nothing about the store's health
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		}),
	}
}

func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *BreakerStore) Count(ctx context.Context, p query.Predicate) (int, error) {
	v, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.Count(ctx, p)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (s *BreakerStore) Find(ctx context.Context, p query.Predicate, sortKey query.SortKey, skip, limit int) ([]model.Transaction, error) {
	v, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.Find(ctx, p, sortKey, skip, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Transaction), nil
}

func (s *BreakerStore) Aggregate(ctx context.Context, p query.Predicate) (model.Metrics, error) {
	v, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.Aggregate(ctx, p)
	})
	if err != nil {
		return model.Metrics{}, err
	}
	return v.(model.Metrics), nil
}

func (s *BreakerStore) Facets(ctx context.Context) (model.Facets, error) {
	v, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.Facets(ctx)
	})
	if err != nil {
		return model.Facets{}, err
	}
	return v.(model.Facets), nil
}
