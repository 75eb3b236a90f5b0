package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name        string
		page, limit string
		want        Page
	}{
		{"defaults", "", "", Page{Number: 1, Limit: 10, Skip: 0}},
		{"explicit", "3", "25", Page{Number: 3, Limit: 25, Skip: 50}},
		{"non-numeric falls back", "abc", "xyz", Page{Number: 1, Limit: 10, Skip: 0}},
		{"zero falls back", "0", "0", Page{Number: 1, Limit: 10, Skip: 0}},
		{"negative falls back", "-2", "-5", Page{Number: 1, Limit: 10, Skip: 0}},
		{"large limit kept", "2", "1000", Page{Number: 2, Limit: 1000, Skip: 1000}},
		{"limit beyond int32 clamped", "1", "99999999999", Page{Number: 1, Limit: maxLimit, Skip: 0}},
		{"far page kept", "500", "10", Page{Number: 500, Limit: 10, Skip: 4990}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePage(tc.page, tc.limit))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10), "empty result still has one page")
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 100, TotalPages(1000, 10))
	assert.Equal(t, 334, TotalPages(1000, 3))
}
