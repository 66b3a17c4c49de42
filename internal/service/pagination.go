package service

// Pagination is the listing envelope returned alongside items.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// DefaultPageSize bounds unpaginated public listings.
const DefaultPageSize = 20

// MaxPageSize caps client-supplied limits.
const MaxPageSize = 100

// NormalizePage clamps page/limit to sane values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// NewPagination fills the envelope from the normalized inputs and the
// total match count.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
