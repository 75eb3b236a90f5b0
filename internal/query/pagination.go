package query

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	// Page numbers and sizes travel to Postgres as int4 parameters.
	maxPage  = math.MaxInt32
	maxLimit = math.MaxInt32
)

type Page struct {
	Number int
	Limit  int
	Skip   int
}

// ParsePage is lenient: missing, non-numeric or non-positive values fall back
// to the defaults instead of failing the request. Any positive limit is kept
// as requested. Pages past the end are kept and simply yield no rows.
func ParsePage(page, limit string) Page {
	number, _ := strconv.Atoi(page)
	size, _ := strconv.Atoi(limit)

	if number < 1 {
		number = DefaultPage
	}
	if number > maxPage {
		number = maxPage
	}
	if size < 1 {
		size = DefaultLimit
	}
	if size > maxLimit {
		size = maxLimit
	}

	return Page{
		Number: number,
		Limit:  size,
		Skip:   (number - 1) * size,
	}
}

// TotalPages is ceil(count/limit), never less than 1.
func TotalPages(count, limit int) int {
	if count <= 0 || limit <= 0 {
		return 1
	}
	return int(math.Ceil(float64(count) / float64(limit)))
}
