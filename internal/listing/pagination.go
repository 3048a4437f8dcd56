package listing

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int `json:"page"`
	Limit  int `json:"limit"`
}

// NewPage clamps out-of-range input instead of rejecting it:
// page < 1 becomes 1, limit < 1 becomes DefaultLimit, limit > MaxLimit becomes MaxLimit.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// ParsePage reads the page and limit query values, using defaults when
// a value is missing or not an integer.
func ParsePage(pageStr, limitStr string) Page {
	number, err := strconv.Atoi(pageStr)
	if err != nil {
		number = DefaultPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = DefaultLimit
	}
	return NewPage(number, limit)
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pages returns ceil(total / limit).
func (p Page) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}

// Pagination is the response envelope describing a page.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func (p Page) Describe(total int64) Pagination {
	return Pagination{
		Page:  p.Number,
		Limit: p.Limit,
		Total: total,
		Pages: p.Pages(total),
	}
}
