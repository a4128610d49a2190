package domain

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to defaults (page=1, limit=20); the limit is capped
// at 100 to prevent runaway queries.
func NewPaginationParams(page, limit *int) PaginationParams {
	return newParams(page, limit, 20, 100)
}

// NewTrackPaginationParams is the variant used for track point listings, which
// legitimately run to thousands of rows per trip. Default 1000, cap 5000 —
// the same ceiling the map overlay loads in one go.
func NewTrackPaginationParams(page, limit *int) PaginationParams {
	return newParams(page, limit, 1000, 5000)
}

func newParams(page, limit *int, def, cap int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: def}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > cap {
			p.Limit = cap
		}
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
