package pagination

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is the page request bound from ?page=&per_page=
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Defaults returns the first page at the default size
func Defaults() *Params {
	return &Params{Page: 1, PerPage: DefaultPerPage}
}

// Normalize clamps page and per_page into the accepted range
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
}

// Offset is the number of rows to skip
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination describes where a page sits in the full result.
// From and To are 1-based row positions, both zero for an empty page.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	From        int64 `json:"from"`
	To          int64 `json:"to"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

func NewPagination(p *Params, total int64, count int) *Pagination {
	per := int64(p.PerPage)
	pages := int((total + per - 1) / per)

	pg := &Pagination{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
		TotalPages:  pages,
		HasNext:     p.Page < pages,
		HasPrev:     p.Page > 1,
	}
	if count > 0 {
		pg.From = int64(p.Offset()) + 1
		pg.To = int64(p.Offset() + count)
	}
	return pg
}

// Result is one page of items with its position
type Result[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewResult pages items, which must already be the rows selected by p
func NewResult[T any](items []T, p *Params, total int64) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{Items: items, Pagination: NewPagination(p, total, len(items))}
}
