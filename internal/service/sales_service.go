package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
	"github.com/anyulbade/retail-sales-dashboard/internal/observability"
	"github.com/anyulbade/retail-sales-dashboard/internal/query"
)

var tracer = otel.Tracer("service/sales")

// SalesStore is the storage the sales service reads from.
type SalesStore interface {
	Count(ctx context.Context, p query.Predicate) (int, error)
	Find(ctx context.Context, p query.Predicate, sortKey query.SortKey, skip, limit int) ([]model.Transaction, error)
	Aggregate(ctx context.Context, p query.Predicate) (model.Metrics, error)
	Facets(ctx context.Context) (model.Facets, error)
}

// SalesPage is one page of matching transactions plus metrics over the
// whole matching set.
type SalesPage struct {
	Data         []model.Transaction
	Metrics      model.Metrics
	TotalPages   int
	CurrentPage  int
	TotalRecords int
	Limit        int
}

type Options struct {
	// QueryTimeout bounds each Query; zero leaves the caller's deadline alone.
	QueryTimeout time.Duration
	// FacetsTTL is how long Facets results are reused; zero disables caching.
	FacetsTTL time.Duration
}

type SalesService struct {
	store   SalesStore
	metrics *observability.Metrics
	opts    Options

	facetsMu      sync.Mutex
	facets        model.Facets
	facetsExpires time.Time
}

func NewSalesService(store SalesStore, metrics *observability.Metrics, opts Options) *SalesService {
	return &SalesService{store: store, metrics: metrics, opts: opts}
}

// Query validates params and returns the requested page. Invalid params fail
// with *query.ValidationError before the store is touched; any store failure
// is returned as *query.DataAccessError and no partial page is produced.
func (s *SalesService) Query(ctx context.Context, params query.Params) (*SalesPage, error) {
	pred, err := query.Compile(params)
	if err != nil {
		s.count("invalid")
		return nil, err
	}
	sortKey, err := query.ResolveSort(params.SortBy)
	if err != nil {
		s.count("invalid")
		return nil, err
	}
	page := query.ParsePage(params.Page, params.Limit)

	ctx, span := tracer.Start(ctx, "SalesService.Query")
	defer span.End()
	span.SetAttributes(
		attribute.String("sales.sort", string(sortKey)),
		attribute.Int("sales.page", page.Number),
		attribute.Int("sales.limit", page.Limit),
	)

	if s.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
		defer cancel()
	}

	var (
		total   int
		rows    []model.Transaction
		metrics model.Metrics
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.timed(gctx, "count", func(ctx context.Context) error {
			var err error
			total, err = s.store.Count(ctx, pred)
			return err
		})
	})

	g.Go(func() error {
		return s.timed(gctx, "find", func(ctx context.Context) error {
			var err error
			rows, err = s.store.Find(ctx, pred, sortKey, page.Skip, page.Limit)
			return err
		})
	})

	g.Go(func() error {
		return s.timed(gctx, "aggregate", func(ctx context.Context) error {
			var err error
			metrics, err = s.store.Aggregate(ctx, pred)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sales query failed")
		s.count("error")
		return nil, err
	}

	if rows == nil {
		rows = []model.Transaction{}
	}

	span.SetAttributes(attribute.Int("sales.total_records", total))
	s.count("ok")

	return &SalesPage{
		Data:         rows,
		Metrics:      metrics,
		TotalPages:   query.TotalPages(total, page.Limit),
		CurrentPage:  page.Number,
		TotalRecords: total,
		Limit:        page.Limit,
	}, nil
}

// timed runs one store call, records its latency and wraps a failure.
func (s *SalesService) timed(ctx context.Context, op string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	if s.metrics != nil {
		s.metrics.RecordStoreCall(op, time.Since(start))
	}
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("sales store call failed")
		return &query.DataAccessError{Op: op, Err: err}
	}
	return nil
}

func (s *SalesService) count(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrQuery(outcome)
	}
}

// Facets returns the filter vocabularies present in the data, cached for
// FacetsTTL.
func (s *SalesService) Facets(ctx context.Context) (model.Facets, error) {
	s.facetsMu.Lock()
	defer s.facetsMu.Unlock()

	if s.opts.FacetsTTL > 0 && time.Now().Before(s.facetsExpires) {
		if s.metrics != nil {
			s.metrics.IncrCacheHit("facets")
		}
		return s.facets, nil
	}
	if s.metrics != nil {
		s.metrics.IncrCacheMiss("facets")
	}

	ctx, span := tracer.Start(ctx, "SalesService.Facets")
	defer span.End()

	var f model.Facets
	err := s.timed(ctx, "facets", func(ctx context.Context) error {
		var err error
		f, err = s.store.Facets(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "facets failed")
		return model.Facets{}, err
	}

	if s.opts.FacetsTTL > 0 {
		s.facets = f
		s.facetsExpires = time.Now().Add(s.opts.FacetsTTL)
	}
	return f, nil
}
