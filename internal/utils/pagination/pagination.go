package pagination

// Pagination represents pagination parameters.
type Pagination struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Default values.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// New creates pagination with default values.
func New() *Pagination {
	return &Pagination{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}
}

// Normalize clamps page and limit into their valid ranges.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset returns the offset for database queries.
func (p *Pagination) Offset() int {
	p.Normalize()
	return (p.Page - 1) * p.Limit
}

// TotalPages calculates the total number of pages.
func (p *Pagination) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit > 0 {
		pages++
	}
	return pages
}

// PageInfo represents pagination info in API responses.
type PageInfo struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// Info returns pagination info for API responses.
func (p *Pagination) Info(total int64) PageInfo {
	p.Normalize()
	return PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   p.TotalPages(total),
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}
