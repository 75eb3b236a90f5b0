package query

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
)

func TestResolveSort(t *testing.T) {
	cases := []struct {
		token string
		want  SortKey
	}{
		{"", SortNameAsc},
		{"name_asc", SortNameAsc},
		{"date_desc", SortDateDesc},
		{"qty_desc", SortQtyDesc},
	}
	for _, tc := range cases {
		t.Run("happy: "+tc.token, func(t *testing.T) {
			got, err := ResolveSort(tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, token := range []string{"price_asc", "NAME_ASC", "date_asc", " name_asc"} {
		t.Run("bad: "+token, func(t *testing.T) {
			_, err := ResolveSort(token)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "sortBy", ve.Param)
			assert.Equal(t, token, ve.Value)
		})
	}
}

func TestSortKey_Less(t *testing.T) {
	txns := []model.Transaction{
		{ID: "T3", CustomerName: "Bela", Quantity: 2, Date: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "T1", CustomerName: "Arun", Quantity: 5, Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "T2", CustomerName: "Bela", Quantity: 5, Date: time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)},
	}

	ids := func(key SortKey) []string {
		sorted := append([]model.Transaction(nil), txns...)
		sort.SliceStable(sorted, func(i, j int) bool { return key.Less(sorted[i], sorted[j]) })
		out := make([]string, len(sorted))
		for i, t := range sorted {
			out[i] = t.ID
		}
		return out
	}

	assert.Equal(t, []string{"T1", "T2", "T3"}, ids(SortNameAsc), "name ties break on ID")
	assert.Equal(t, []string{"T2", "T3", "T1"}, ids(SortDateDesc))
	assert.Equal(t, []string{"T1", "T2", "T3"}, ids(SortQtyDesc), "quantity ties break on ID")
}

func TestSortKey_Less_DateDescIgnoresTimeOfDay(t *testing.T) {
	morning := model.Transaction{ID: "T9", Date: time.Date(2023, 1, 2, 8, 0, 0, 0, time.UTC)}
	evening := model.Transaction{ID: "T4", Date: time.Date(2023, 1, 2, 21, 30, 0, 0, time.UTC)}
	earlier := model.Transaction{ID: "T1", Date: time.Date(2023, 1, 1, 23, 59, 0, 0, time.UTC)}

	assert.True(t, SortDateDesc.Less(evening, morning), "same day falls back to ID")
	assert.False(t, SortDateDesc.Less(morning, evening))
	assert.True(t, SortDateDesc.Less(morning, earlier), "later day first")
}
