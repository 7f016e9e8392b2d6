package domain

import "math"

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"total_pages"`
}

// Page is the {data, pagination} envelope returned by paginated listings.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Skip converts a 1-based page number into a row offset. Pages past the
// representable range map to math.MaxInt, which selects no rows.
func Skip(page, limit int) int {
	if page < 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// TotalPages is ceil(total/limit), never less than 1.
func TotalPages(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 1
	}
	l := int64(limit)
	return (total + l - 1) / l
}

func NewPage[T any](data []T, page, limit int, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data: data,
		Pagination: Pagination{
			CurrentPage: page,
			PerPage:     limit,
			Total:       total,
			TotalPages:  TotalPages(total, limit),
		},
	}
}
