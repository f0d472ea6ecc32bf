// Package pagination implements page/limit windows over already filtered
// result sets.
package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Params struct {
	Page  int
	Limit int
}

// Meta is serialized as the "pagination" block of list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewParams coerces page and limit into the valid range, falling back to the
// defaults for values below 1.
func NewParams(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Params{Page: page, Limit: limit}
}

// ParseParams builds Params from raw query values. Missing or non-numeric
// input is treated as absent.
func ParseParams(page, limit string) Params {
	return NewParams(parseInt(page), parseInt(limit))
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// Paginate returns the window [(page-1)*limit, (page-1)*limit+limit) of items.
// Windows past the end are empty, never an error.
func Paginate[T any](items []T, p Params) ([]T, Meta) {
	p = NewParams(p.Page, p.Limit)
	total := len(items)

	totalPages := total / p.Limit
	if total%p.Limit != 0 {
		totalPages++
	}

	meta := Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}

	// Compare page indexes before multiplying so huge page or limit values
	// cannot overflow the offset.
	if p.Page-1 >= totalPages {
		return []T{}, meta
	}

	start := (p.Page - 1) * p.Limit
	end := total
	if total-start > p.Limit {
		end = start + p.Limit
	}

	return items[start:end], meta
}
