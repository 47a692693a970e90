package model

import "math"

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps Skip inside int range for any limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Page is a pagination window. Use NewPage to get clamped values.
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps page and limit; values below 1 fall back to the defaults.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if number > MaxPage {
		number = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// Skip is the number of records before the window.
func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}

// Pages is ceil(total/limit).
func (p Page) Pages(total int64) int64 {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return (total + limit - 1) / limit
}
