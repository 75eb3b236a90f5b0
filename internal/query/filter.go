package query

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
)

// DateLayout is the only accepted date format for startDate/endDate.
const DateLayout = "2006-01-02"

// Params carries the raw, optional query-string values of a sales request.
// Multi-value facets are comma-separated.
type Params struct {
	Search        string
	Region        string
	Gender        string
	Category      string
	Tags          string
	PaymentMethod string
	MinAge        string
	MaxAge        string
	StartDate     string
	EndDate       string
	SortBy        string
	Page          string
	Limit         string
}

// Predicate is the compiled form of Params. The zero value matches every
// transaction. It is shared unchanged by the listing, the count and the
// aggregate so the three always describe the same set.
type Predicate struct {
	Search         string
	Regions        []string
	Genders        []string
	Categories     []string
	PaymentMethods []string
	Tags           []string
	MinAge         *int
	MaxAge         *int
	StartDate      *time.Time
	EndDate        *time.Time
}

// Compile validates p and builds the predicate. Bounds that fail to parse are
// rejected with a *ValidationError naming the parameter.
func Compile(p Params) (Predicate, error) {
	pred := Predicate{
		Regions:        splitList(p.Region),
		Genders:        splitList(p.Gender),
		Categories:     splitList(p.Category),
		PaymentMethods: splitList(p.PaymentMethod),
		Tags:           splitList(p.Tags),
	}

	if strings.TrimSpace(p.Search) != "" {
		pred.Search = p.Search
	}

	var err error
	if pred.MinAge, err = parseAge("minAge", p.MinAge); err != nil {
		return Predicate{}, err
	}
	if pred.MaxAge, err = parseAge("maxAge", p.MaxAge); err != nil {
		return Predicate{}, err
	}
	if pred.StartDate, err = parseDate("startDate", p.StartDate); err != nil {
		return Predicate{}, err
	}
	if pred.EndDate, err = parseDate("endDate", p.EndDate); err != nil {
		return Predicate{}, err
	}

	return pred, nil
}

// splitList splits on commas only; values are kept verbatim, whitespace included.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parseAge(param, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ValidationError{Param: param, Value: raw, Reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, &ValidationError{Param: param, Value: raw, Reason: fmt.Sprintf("%d is out of range", n)}
	}
	return &n, nil
}

func parseDate(param, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, &ValidationError{Param: param, Value: raw, Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", raw)}
	}
	return &d, nil
}

func (p Predicate) IsEmpty() bool {
	return p.Search == "" &&
		len(p.Regions) == 0 && len(p.Genders) == 0 && len(p.Categories) == 0 &&
		len(p.PaymentMethods) == 0 && len(p.Tags) == 0 &&
		p.MinAge == nil && p.MaxAge == nil &&
		p.StartDate == nil && p.EndDate == nil
}

// Matches evaluates the predicate against a single transaction in process.
func (p Predicate) Matches(t model.Transaction) bool {
	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		if !strings.Contains(strings.ToLower(t.CustomerName), needle) &&
			!strings.Contains(strings.ToLower(t.PhoneNumber), needle) {
			return false
		}
	}

	if !allowed(p.Regions, t.CustomerRegion) ||
		!allowed(p.Genders, t.Gender) ||
		!allowed(p.Categories, t.ProductCategory) ||
		!allowed(p.PaymentMethods, t.PaymentMethod) {
		return false
	}

	if len(p.Tags) > 0 && !slices.ContainsFunc(t.Tags, func(tag string) bool {
		return slices.Contains(p.Tags, tag)
	}) {
		return false
	}

	if p.MinAge != nil && t.Age < *p.MinAge {
		return false
	}
	if p.MaxAge != nil && t.Age > *p.MaxAge {
		return false
	}

	day := model.CalendarDate(t.Date)
	if p.StartDate != nil && day.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && day.After(*p.EndDate) {
		return false
	}

	return true
}

func allowed(values []string, v string) bool {
	return len(values) == 0 || slices.Contains(values, v)
}
