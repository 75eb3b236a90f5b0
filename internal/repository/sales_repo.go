package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
	"github.com/anyulbade/retail-sales-dashboard/internal/query"
)

type SalesRepository struct {
	pool *pgxpool.Pool
}

func NewSalesRepository(pool *pgxpool.Pool) *SalesRepository {
	return &SalesRepository{pool: pool}
}

// Every optional clause is always present and switched off by its argument
// (empty string, empty array or NULL), so the statement text never varies
// with the request.
const salesWhere = `
	WHERE ($1 = '' OR strpos(lower(customer_name), lower($1)) > 0 OR strpos(lower(phone_number), lower($1)) > 0)
		AND (cardinality($2::text[]) = 0 OR customer_region = ANY($2))
		AND (cardinality($3::text[]) = 0 OR gender = ANY($3))
		AND (cardinality($4::text[]) = 0 OR product_category = ANY($4))
		AND (cardinality($5::text[]) = 0 OR payment_method = ANY($5))
		AND (cardinality($6::text[]) = 0 OR tags && $6)
		AND ($7::int IS NULL OR age >= $7)
		AND ($8::int IS NULL OR age <= $8)
		AND ($9::date IS NULL OR transaction_date >= $9)
		AND ($10::date IS NULL OR transaction_date <= $10)
`

const salesColumns = `id, transaction_date, customer_id, customer_name, phone_number, gender, age,
	customer_region, product_category, product_id, quantity, total_amount, final_amount,
	payment_method, tags, employee_name`

var sortClauses = map[query.SortKey]string{
	query.SortNameAsc:  `customer_name COLLATE "C" ASC, id COLLATE "C" ASC`,
	query.SortDateDesc: `transaction_date DESC, id COLLATE "C" ASC`,
	query.SortQtyDesc:  `quantity DESC, id COLLATE "C" ASC`,
}

func predicateArgs(p query.Predicate) []any {
	return []any{
		p.Search,
		nonNil(p.Regions),
		nonNil(p.Genders),
		nonNil(p.Categories),
		nonNil(p.PaymentMethods),
		nonNil(p.Tags),
		p.MinAge,
		p.MaxAge,
		p.StartDate,
		p.EndDate,
	}
}

// nonNil avoids binding a nil slice, which pgx sends as NULL rather than '{}'.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (r *SalesRepository) Count(ctx context.Context, p query.Predicate) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales_transactions`+salesWhere, predicateArgs(p)...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return total, nil
}

func (r *SalesRepository) Find(ctx context.Context, p query.Predicate, sortKey query.SortKey, skip, limit int) ([]model.Transaction, error) {
	orderBy, ok := sortClauses[sortKey]
	if !ok {
		return nil, fmt.Errorf("unsupported sort key %q", sortKey)
	}

	args := append(predicateArgs(p), limit, skip)
	sql := fmt.Sprintf(`SELECT %s FROM sales_transactions %s ORDER BY %s LIMIT $11 OFFSET $12`,
		salesColumns, salesWhere, orderBy)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	results := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	return results, nil
}

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(
		&t.ID, &t.Date, &t.CustomerID, &t.CustomerName, &t.PhoneNumber, &t.Gender, &t.Age,
		&t.CustomerRegion, &t.ProductCategory, &t.ProductID, &t.Quantity, &t.TotalAmount, &t.FinalAmount,
		&t.PaymentMethod, &t.Tags, &t.EmployeeName,
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("scan sale: %w", err)
	}
	return t, nil
}

func (r *SalesRepository) Aggregate(ctx context.Context, p query.Predicate) (model.Metrics, error) {
	aggQuery := `
		SELECT
			COALESCE(SUM(quantity), 0)::bigint AS total_units,
			COALESCE(SUM(COALESCE(final_amount, total_amount, 0)), 0)::numeric AS total_amount,
			COALESCE(SUM(
				CASE WHEN total_amount IS NOT NULL AND final_amount IS NOT NULL
					THEN GREATEST(total_amount - final_amount, 0)
					ELSE 0
				END
			), 0)::numeric AS total_discount
		FROM sales_transactions` + salesWhere

	var m model.Metrics
	var amount, discount decimal.Decimal
	err := r.pool.QueryRow(ctx, aggQuery, predicateArgs(p)...).Scan(&m.TotalUnits, &amount, &discount)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("aggregate sales: %w", err)
	}
	m.TotalAmount = amount
	m.TotalDiscount = discount

	return m, nil
}

// facetsQuery collates both the DISTINCT argument and its ORDER BY key;
// Postgres rejects a DISTINCT aggregate whose sort key differs from its argument.
const facetsQuery = `
	SELECT
		COALESCE(array_agg(DISTINCT customer_region COLLATE "C" ORDER BY customer_region COLLATE "C") FILTER (WHERE customer_region <> ''), '{}'),
		COALESCE(array_agg(DISTINCT gender COLLATE "C" ORDER BY gender COLLATE "C") FILTER (WHERE gender <> ''), '{}'),
		COALESCE(array_agg(DISTINCT product_category COLLATE "C" ORDER BY product_category COLLATE "C") FILTER (WHERE product_category <> ''), '{}'),
		COALESCE(array_agg(DISTINCT payment_method COLLATE "C" ORDER BY payment_method COLLATE "C") FILTER (WHERE payment_method <> ''), '{}'),
		COALESCE((SELECT array_agg(DISTINCT tag COLLATE "C" ORDER BY tag COLLATE "C") FROM sales_transactions, unnest(tags) AS tag), '{}'),
		COALESCE(MIN(age), 0),
		COALESCE(MAX(age), 0),
		MIN(transaction_date),
		MAX(transaction_date)
	FROM sales_transactions
`

func (r *SalesRepository) Facets(ctx context.Context) (model.Facets, error) {
	var f model.Facets
	err := r.pool.QueryRow(ctx, facetsQuery).Scan(
		&f.Regions, &f.Genders, &f.Categories, &f.PaymentMethods, &f.Tags,
		&f.MinAge, &f.MaxAge, &f.MinDate, &f.MaxDate,
	)
	if err != nil {
		return model.Facets{}, fmt.Errorf("query facets: %w", err)
	}
	return f, nil
}

func (r *SalesRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
