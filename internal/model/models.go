package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one retail sale line in the canonical schema. Storage
// adapters map their raw records onto it at the boundary.
type Transaction struct {
	ID              string
	Date            time.Time
	CustomerID      string
	CustomerName    string
	PhoneNumber     string
	Gender          string
	Age             int
	CustomerRegion  string
	ProductCategory string
	ProductID       string
	Quantity        int
	TotalAmount     decimal.NullDecimal
	FinalAmount     decimal.NullDecimal
	PaymentMethod   string
	Tags            []string
	EmployeeName    string
}

// NetAmount is the post-discount amount, falling back to the total when the
// final amount is absent.
func (t Transaction) NetAmount() decimal.Decimal {
	switch {
	case t.FinalAmount.Valid:
		return t.FinalAmount.Decimal
	case t.TotalAmount.Valid:
		return t.TotalAmount.Decimal
	default:
		return decimal.Zero
	}
}

// Discount is total minus final. Rows missing either amount, or with a final
// above the total, contribute zero.
func (t Transaction) Discount() decimal.Decimal {
	if !t.TotalAmount.Valid || !t.FinalAmount.Valid {
		return decimal.Zero
	}
	d := t.TotalAmount.Decimal.Sub(t.FinalAmount.Decimal)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Facets lists the distinct filter values present in the dataset.
type Facets struct {
	Regions        []string
	Genders        []string
	Categories     []string
	PaymentMethods []string
	Tags           []string
	MinAge         int
	MaxAge         int
	MinDate        *time.Time
	MaxDate        *time.Time
}
