package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
)

const DefaultSeedRows = 5000

var (
	firstNames = []string{
		"Aarav", "Neha", "Rohan", "Priya", "Vikram", "Ananya", "Karan", "Isha",
		"Arjun", "Sneha", "Rahul", "Kavya", "Aditya", "Meera", "Siddharth", "Pooja",
	}
	lastNames = []string{
		"Sharma", "Verma", "Iyer", "Reddy", "Gupta", "Nair", "Patel", "Singh",
		"Mehta", "Das", "Kapoor", "Joshi",
	}
	employees = []string{
		"Harsh Agarwal", "Ritu Malhotra", "Suresh Pillai", "Divya Menon",
		"Manoj Rao", "Nisha Bhatt",
	}
	regions  = []string{"North", "South", "East", "West", "Central"}
	genders  = []string{"Male", "Female"}
	payments = []string{"UPI", "Cash", "Debit Card", "Credit Card", "Wallet", "Net Banking"}

	// category -> tag pool and unit price range in rupees
	categories = []struct {
		Name     string
		Tags     []string
		MinPrice int
		MaxPrice int
	}{
		{"Clothing", []string{"fashion", "casual", "cotton", "formal", "gift"}, 300, 4000},
		{"Electronics", []string{"electronics", "wireless", "smart", "portable", "gift"}, 1500, 60000},
		{"Beauty", []string{"skincare", "fragrance", "organic", "makeup", "gift"}, 150, 3500},
		{"Accessories", []string{"fashion", "leather", "travel", "gift", "unisex"}, 200, 6000},
	}

	seedStart = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	seedDays  = 3 * 365
)

// GenerateTransactions builds n deterministic transactions from seed. The same
// (n, seed) pair always yields the same rows.
func GenerateTransactions(n int, seed int64) []model.Transaction {
	rng := rand.New(rand.NewSource(seed))
	customers := n/4 + 1

	txns := make([]model.Transaction, 0, n)
	for i := 0; i < n; i++ {
		custNo := rng.Intn(customers)
		// customer attributes derive from the customer number so repeat buyers stay consistent
		custRng := rand.New(rand.NewSource(seed*7919 + int64(custNo)))
		name := firstNames[custRng.Intn(len(firstNames))] + " " + lastNames[custRng.Intn(len(lastNames))]
		phone := fmt.Sprintf("+91 9%09d", custRng.Intn(1_000_000_000))
		gender := genders[custRng.Intn(len(genders))]
		age := 18 + custRng.Intn(48)
		region := regions[custRng.Intn(len(regions))]

		cat := categories[rng.Intn(len(categories))]
		qty := 1 + rng.Intn(10)
		unit := cat.MinPrice + rng.Intn(cat.MaxPrice-cat.MinPrice+1)
		total := decimal.NewFromInt(int64(unit * qty))
		discountPct := int64(rng.Intn(31))
		final := total.Mul(decimal.NewFromInt(100 - discountPct)).Div(decimal.NewFromInt(100)).Round(2)

		t := model.Transaction{
			ID:              fmt.Sprintf("TXN-%06d", i+1),
			Date:            seedStart.AddDate(0, 0, rng.Intn(seedDays)),
			CustomerID:      fmt.Sprintf("CUST-%05d", custNo+1),
			CustomerName:    name,
			PhoneNumber:     phone,
			Gender:          gender,
			Age:             age,
			CustomerRegion:  region,
			ProductCategory: cat.Name,
			ProductID:       fmt.Sprintf("PROD-%04d", 1+rng.Intn(500)),
			Quantity:        qty,
			TotalAmount:     decimal.NewNullDecimal(total),
			FinalAmount:     decimal.NewNullDecimal(final),
			PaymentMethod:   payments[rng.Intn(len(payments))],
			Tags:            pickTags(rng, cat.Tags),
			EmployeeName:    employees[rng.Intn(len(employees))],
		}

		// legacy rows imported without a settled final amount
		if rng.Intn(25) == 0 {
			t.FinalAmount = decimal.NullDecimal{}
		}

		txns = append(txns, t)
	}

	return txns
}

func pickTags(rng *rand.Rand, pool []string) []string {
	n := rng.Intn(3)
	if n == 0 {
		return []string{}
	}
	perm := rng.Perm(len(pool))
	tags := make([]string, 0, n)
	for _, idx := range perm[:n] {
		tags = append(tags, pool[idx])
	}
	return tags
}

// SeedData loads rows generated transactions into an empty sales_transactions
// table. It is a no-op when the table already has data.
func SeedData(ctx context.Context, pool *pgxpool.Pool, rows int) error {
	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM sales_transactions").Scan(&count)
	if err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Int("existing", count).Msg("seed data already exists, skipping")
		return nil
	}

	txns := GenerateTransactions(rows, 42)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	columns := []string{
		"id", "transaction_date", "customer_id", "customer_name", "phone_number", "gender", "age",
		"customer_region", "product_category", "product_id", "quantity", "total_amount", "final_amount",
		"payment_method", "tags", "employee_name",
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"sales_transactions"}, columns,
		pgx.CopyFromSlice(len(txns), func(i int) ([]any, error) {
			t := txns[i]
			return []any{
				t.ID, t.Date, t.CustomerID, t.CustomerName, t.PhoneNumber, t.Gender, t.Age,
				t.CustomerRegion, t.ProductCategory, t.ProductID, t.Quantity,
				numeric(t.TotalAmount), numeric(t.FinalAmount),
				t.PaymentMethod, t.Tags, t.EmployeeName,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy sales transactions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	log.Info().Int64("count", copied).Msg("inserted sales transactions")
	return nil
}

// numeric renders an optional amount as text so NUMERIC receives it without
// float rounding; nil becomes SQL NULL.
func numeric(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.StringFixed(2)
}
