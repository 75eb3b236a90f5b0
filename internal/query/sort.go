package query

import (
	"fmt"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
)

type SortKey string

const (
	SortNameAsc  SortKey = "name_asc"
	SortDateDesc SortKey = "date_desc"
	SortQtyDesc  SortKey = "qty_desc"
)

// ResolveSort maps a sortBy token to a SortKey. An empty token selects
// name_asc; anything unrecognised is a validation error.
func ResolveSort(token string) (SortKey, error) {
	switch SortKey(token) {
	case "", SortNameAsc:
		return SortNameAsc, nil
	case SortDateDesc:
		return SortDateDesc, nil
	case SortQtyDesc:
		return SortQtyDesc, nil
	default:
		return "", &ValidationError{
			Param:  "sortBy",
			Value:  token,
			Reason: fmt.Sprintf("unrecognized sort key %q, use: name_asc, date_desc, qty_desc", token),
		}
	}
}

// Less orders a before b. Equal primary keys fall back to the transaction ID
// so every ordering is total and paging is stable.
func (k SortKey) Less(a, b model.Transaction) bool {
	switch k {
	case SortDateDesc:
		// Day granularity, like the SQL date column.
		da, db := model.CalendarDate(a.Date), model.CalendarDate(b.Date)
		if !da.Equal(db) {
			return da.After(db)
		}
	case SortQtyDesc:
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
	default:
		if a.CustomerName != b.CustomerName {
			return a.CustomerName < b.CustomerName
		}
	}
	return a.ID < b.ID
}
