package dto

import "github.com/anyulbade/retail-sales-dashboard/internal/query"

// SalesQuery binds the query string of GET /api/sales. Every field is
// optional and kept as raw text; parsing happens in the query package.
type SalesQuery struct {
	Search        string `form:"search"`
	Region        string `form:"region"`
	Gender        string `form:"gender"`
	Category      string `form:"category"`
	Tags          string `form:"tags"`
	PaymentMethod string `form:"paymentMethod"`
	MinAge        string `form:"minAge"`
	MaxAge        string `form:"maxAge"`
	StartDate     string `form:"startDate"`
	EndDate       string `form:"endDate"`
	SortBy        string `form:"sortBy"`
	Page          string `form:"page"`
	Limit         string `form:"limit"`
}

func (q SalesQuery) Params() query.Params {
	return query.Params{
		Search:        q.Search,
		Region:        q.Region,
		Gender:        q.Gender,
		Category:      q.Category,
		Tags:          q.Tags,
		PaymentMethod: q.PaymentMethod,
		MinAge:        q.MinAge,
		MaxAge:        q.MaxAge,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
		SortBy:        q.SortBy,
		Page:          q.Page,
		Limit:         q.Limit,
	}
}
