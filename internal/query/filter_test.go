package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
)

func day(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompile(t *testing.T) {
	t.Run("happy: empty params match everything", func(t *testing.T) {
		pred, err := Compile(Params{})
		require.NoError(t, err)
		assert.True(t, pred.IsEmpty())
		assert.True(t, pred.Matches(model.Transaction{CustomerName: "Anyone"}))
	})

	t.Run("happy: facets split on comma without trimming", func(t *testing.T) {
		pred, err := Compile(Params{Region: "North, South", Tags: "gift"})
		require.NoError(t, err)
		assert.Equal(t, []string{"North", " South"}, pred.Regions)
		assert.Equal(t, []string{"gift"}, pred.Tags)
		assert.Nil(t, pred.Genders, "empty input is no filter, not a list with an empty string")
	})

	t.Run("happy: whitespace-only search adds no clause", func(t *testing.T) {
		pred, err := Compile(Params{Search: "   "})
		require.NoError(t, err)
		assert.Empty(t, pred.Search)
	})

	t.Run("happy: independent age bounds", func(t *testing.T) {
		pred, err := Compile(Params{MinAge: "30"})
		require.NoError(t, err)
		require.NotNil(t, pred.MinAge)
		assert.Equal(t, 30, *pred.MinAge)
		assert.Nil(t, pred.MaxAge)
	})

	t.Run("happy: dates parsed as calendar days", func(t *testing.T) {
		pred, err := Compile(Params{StartDate: "2023-01-05", EndDate: "2023-02-01"})
		require.NoError(t, err)
		assert.Equal(t, day("2023-01-05"), *pred.StartDate)
		assert.Equal(t, day("2023-02-01"), *pred.EndDate)
	})

	bad := []struct {
		name   string
		params Params
		param  string
	}{
		{"non-numeric minAge", Params{MinAge: "thirty"}, "minAge"},
		{"fractional maxAge", Params{MaxAge: "40.5"}, "maxAge"},
		{"minAge beyond int32", Params{MinAge: "99999999999"}, "minAge"},
		{"malformed startDate", Params{StartDate: "05/01/2023"}, "startDate"},
		{"unpadded endDate", Params{EndDate: "2023-1-5"}, "endDate"},
		{"impossible endDate", Params{EndDate: "2023-02-30"}, "endDate"},
	}
	for _, tc := range bad {
		t.Run("bad: "+tc.name, func(t *testing.T) {
			_, err := Compile(tc.params)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.param, ve.Param)
			assert.Contains(t, err.Error(), tc.param)
			assert.True(t, IsValidation(err))
			assert.False(t, IsDataAccess(err))
		})
	}
}

func TestPredicate_Matches(t *testing.T) {
	txn := model.Transaction{
		ID:              "TXN-1",
		Date:            time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		CustomerName:    "Neha Sharma",
		PhoneNumber:     "+91 9876543210",
		Gender:          "Female",
		Age:             34,
		CustomerRegion:  "North",
		ProductCategory: "Beauty",
		PaymentMethod:   "UPI",
		Tags:            []string{"skincare", "organic"},
	}

	cases := []struct {
		name   string
		params Params
		want   bool
	}{
		{"search on name ignores case", Params{Search: "neHA"}, true},
		{"search on phone substring", Params{Search: "97"}, true},
		{"search is literal, not a pattern", Params{Search: "N.ha"}, false},
		{"search miss", Params{Search: "Rahul"}, false},
		{"region in list", Params{Region: "South,North"}, true},
		{"region not in list", Params{Region: "South,East"}, false},
		{"untrimmed facet value does not match", Params{Region: "South, North"}, false},
		{"unknown vocabulary passes through", Params{Region: "Atlantis"}, false},
		{"gender", Params{Gender: "Female"}, true},
		{"category", Params{Category: "Electronics"}, false},
		{"payment method", Params{PaymentMethod: "Cash,UPI"}, true},
		{"tags overlap", Params{Tags: "gift,organic"}, true},
		{"tags disjoint", Params{Tags: "gift,electronics"}, false},
		{"age inside range", Params{MinAge: "30", MaxAge: "40"}, true},
		{"age on inclusive bound", Params{MinAge: "34", MaxAge: "34"}, true},
		{"age below lower bound only", Params{MinAge: "35"}, false},
		{"age above upper bound only", Params{MaxAge: "33"}, false},
		{"inverted age range matches nothing", Params{MinAge: "40", MaxAge: "30"}, false},
		{"date on start bound", Params{StartDate: "2023-03-15"}, true},
		{"date on end bound", Params{EndDate: "2023-03-15"}, true},
		{"date before start", Params{StartDate: "2023-03-16"}, false},
		{"date after end", Params{EndDate: "2023-03-14"}, false},
		{"all clauses combined", Params{Search: "sharma", Region: "North", Gender: "Female", Tags: "organic", MinAge: "18", EndDate: "2023-12-31"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pred, err := Compile(tc.params)
			require.NoError(t, err)
			assert.Equal(t, tc.want, pred.Matches(txn))
		})
	}

	t.Run("edge: intra-day timestamp compared by calendar day", func(t *testing.T) {
		late := txn
		late.Date = time.Date(2023, 3, 15, 22, 30, 0, 0, time.UTC)

		pred, err := Compile(Params{EndDate: "2023-03-15"})
		require.NoError(t, err)
		assert.True(t, pred.Matches(late))
	})
}
