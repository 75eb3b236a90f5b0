package model

import "github.com/shopspring/decimal"

// Metrics are the sums reported alongside a listing, computed over every
// matching transaction rather than the current page.
type Metrics struct {
	TotalUnits    int64
	TotalAmount   decimal.Decimal
	TotalDiscount decimal.Decimal
}

func (m *Metrics) Add(t Transaction) {
	m.TotalUnits += int64(t.Quantity)
	m.TotalAmount = m.TotalAmount.Add(t.NetAmount())
	m.TotalDiscount = m.TotalDiscount.Add(t.Discount())
}

// Aggregate sums txns. An empty slice yields all-zero metrics.
func Aggregate(txns []Transaction) Metrics {
	m := Metrics{TotalAmount: decimal.Zero, TotalDiscount: decimal.Zero}
	for _, t := range txns {
		m.Add(t)
	}
	return m
}
