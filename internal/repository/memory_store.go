package repository

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
	"github.com/anyulbade/retail-sales-dashboard/internal/query"
)

// MemoryStore serves the sales read path from an immutable in-process
// snapshot. It evaluates the same predicate and ordering rules as the SQL
// repository and is safe for concurrent readers.
type MemoryStore struct {
	rows []model.Transaction
}

func NewMemoryStore(rows []model.Transaction) *MemoryStore {
	return &MemoryStore{rows: slices.Clone(rows)}
}

func (s *MemoryStore) match(p query.Predicate) []model.Transaction {
	var out []model.Transaction
	for _, t := range s.rows {
		if p.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *MemoryStore) Count(ctx context.Context, p query.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.match(p)), nil
}

func (s *MemoryStore) Find(ctx context.Context, p query.Predicate, sortKey query.SortKey, skip, limit int) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := s.match(p)
	sort.SliceStable(matched, func(i, j int) bool {
		return sortKey.Less(matched[i], matched[j])
	})

	if skip >= len(matched) {
		return []model.Transaction{}, nil
	}
	end := len(matched)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return slices.Clone(matched[skip:end]), nil
}

func (s *MemoryStore) Aggregate(ctx context.Context, p query.Predicate) (model.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return model.Metrics{}, err
	}
	return model.Aggregate(s.match(p)), nil
}

func (s *MemoryStore) Facets(ctx context.Context) (model.Facets, error) {
	if err := ctx.Err(); err != nil {
		return model.Facets{}, err
	}

	regions := map[string]struct{}{}
	genders := map[string]struct{}{}
	categories := map[string]struct{}{}
	payments := map[string]struct{}{}
	tags := map[string]struct{}{}

	var f model.Facets
	for i, t := range s.rows {
		addValue(regions, t.CustomerRegion)
		addValue(genders, t.Gender)
		addValue(categories, t.ProductCategory)
		addValue(payments, t.PaymentMethod)
		for _, tag := range t.Tags {
			addValue(tags, tag)
		}

		if i == 0 || t.Age < f.MinAge {
			f.MinAge = t.Age
		}
		if i == 0 || t.Age > f.MaxAge {
			f.MaxAge = t.Age
		}
		d := model.CalendarDate(t.Date)
		if f.MinDate == nil || d.Before(*f.MinDate) {
			f.MinDate = timePtr(d)
		}
		if f.MaxDate == nil || d.After(*f.MaxDate) {
			f.MaxDate = timePtr(d)
		}
	}

	f.Regions = sortedKeys(regions)
	f.Genders = sortedKeys(genders)
	f.Categories = sortedKeys(categories)
	f.PaymentMethods = sortedKeys(payments)
	f.Tags = sortedKeys(tags)
	return f, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func addValue(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func timePtr(t time.Time) *time.Time {
	return &t
}
