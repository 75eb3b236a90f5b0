package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLInjection(t *testing.T) {
	router := newPostgresRouter(t)

	injections := []struct {
		name  string
		param string
		value string
	}{
		{"search drop table", "search", "x'; DROP TABLE sales_transactions; --"},
		{"search tautology", "search", "' OR '1'='1"},
		{"region tautology", "region", "North' OR '1'='1"},
		{"tags array breakout", "tags", "gift}','{organic"},
		{"payment union", "paymentMethod", "UPI' UNION SELECT * FROM pg_catalog.pg_tables --"},
	}

	for _, tc := range injections {
		t.Run(tc.name, func(t *testing.T) {
			w := doGet(router, "/api/sales?"+url.Values{tc.param: {tc.value}}.Encode())

			// bound parameters: the payload is just an unmatched literal
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			body := decodeSales(t, w)
			assert.Equal(t, 0, body.TotalRecords)
		})
	}

	t.Run("sortBy is whitelisted", func(t *testing.T) {
		w := doGet(router, "/api/sales?"+url.Values{"sortBy": {"customer_name; DROP TABLE sales_transactions"}}.Encode())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("table survives", func(t *testing.T) {
		body := decodeSales(t, doGet(router, "/api/sales"))
		assert.Equal(t, 500, body.TotalRecords)
	})
}

func TestLiteralSearch(t *testing.T) {
	router := newPostgresRouter(t)

	for _, pattern := range []string{"%", "_", ".*", "\\"} {
		t.Run(pattern, func(t *testing.T) {
			w := doGet(router, "/api/sales?"+url.Values{"search": {pattern}}.Encode())
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 0, decodeSales(t, w).TotalRecords, "metacharacters must not act as wildcards")
		})
	}
}

func TestBoundaryConditions(t *testing.T) {
	router := newPostgresRouter(t)

	t.Run("limit: negative defaults to 10", func(t *testing.T) {
		body := decodeSales(t, doGet(router, "/api/sales?limit=-1"))
		assert.Len(t, body.Data, 10)
	})

	t.Run("limit: 101 is kept", func(t *testing.T) {
		body := decodeSales(t, doGet(router, "/api/sales?limit=101"))
		assert.Len(t, body.Data, 101)
		assert.Equal(t, 5, body.TotalPages)
	})

	t.Run("page: huge value is an empty page", func(t *testing.T) {
		w := doGet(router, "/api/sales?page=99999999999")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeSales(t, w).Data)
	})

	t.Run("age: overflow rejected", func(t *testing.T) {
		w := doGet(router, "/api/sales?minAge=99999999999999999999")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("dates: same day window", func(t *testing.T) {
		w := doGet(router, "/api/sales?startDate=2022-06-15&endDate=2022-06-15&limit=100")
		require.Equal(t, http.StatusOK, w.Code)
		for _, row := range decodeSales(t, w).Data {
			assert.Equal(t, "2022-06-15", row["date"])
		}
	})
}
