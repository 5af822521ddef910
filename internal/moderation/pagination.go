package moderation

import (
	"fmt"
	"sync"

	"ismaalAdmin/internal/models"
)

const (
	DefaultPerPage  = 10
	maxVisiblePages = 5
)

// PageSizes are the page sizes offered by the dashboard.
var PageSizes = []int{5, 10, 20, 50}

func ValidPerPage(n int) bool {
	for _, size := range PageSizes {
		if n == size {
			return true
		}
	}
	return false
}

// Page is one window of an already loaded list. PageNumbers holds the page
// links to show, with 0 standing for an ellipsis.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	PerPage     int   `json:"perPage"`
	TotalItems  int   `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	StartItem   int   `json:"startItem"`
	EndItem     int   `json:"endItem"`
	PageNumbers []int `json:"pageNumbers"`
}

// Paginate windows items. page is clamped into the valid range and a
// non-positive perPage falls back to the default.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := min(start+perPage, total)
	if start > total {
		start = total
	}

	p := Page[T]{
		Items:       append([]T(nil), items[start:end]...),
		Page:        page,
		PerPage:     perPage,
		TotalItems:  total,
		TotalPages:  totalPages,
		PageNumbers: PageNumbers(page, totalPages),
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	if total > 0 {
		p.StartItem = start + 1
		p.EndItem = end
	}
	return p
}

// PageNumbers lists the page links around current: always the first and
// last page, up to one neighbour on each side, and 0 where pages are elided.
func PageNumbers(current, totalPages int) []int {
	pages := []int{}
	if totalPages <= maxVisiblePages {
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	pages = append(pages, 1)
	if current > 3 {
		pages = append(pages, 0)
	}
	for i := max(2, current-1); i <= min(totalPages-1, current+1); i++ {
		pages = append(pages, i)
	}
	if current < totalPages-2 {
		pages = append(pages, 0)
	}
	return append(pages, totalPages)
}

// View is the filter and paging state of one dashboard view.
type View struct {
	mu      sync.Mutex
	filter  Filter
	page    int
	perPage int
}

func NewView() *View {
	return &View{filter: FilterAll, page: 1, perPage: DefaultPerPage}
}

// State returns the current filter, page and page size.
func (v *View) State() (Filter, int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter, v.page, v.perPage
}

// SetFilter selects a filter and goes back to the first page.
func (v *View) SetFilter(f Filter) error {
	parsed, err := ParseFilter(string(f))
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = parsed
	v.page = 1
	return nil
}

// SetPerPage selects a page size and goes back to the first page.
func (v *View) SetPerPage(n int) error {
	if !ValidPerPage(n) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.perPage = n
	v.page = 1
	return nil
}

// SetPage moves to page n. The value is clamped on the next Window call.
func (v *View) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 {
		n = 1
	}
	v.page = n
}

// Window filters items and returns the current page, storing the clamped
// page number back into the view.
func (v *View) Window(items []models.Submission) Page[models.Submission] {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := Paginate(v.filter.Apply(items), v.page, v.perPage)
	v.page = p.Page
	return p
}
