package listing

// MaxPageSize caps page_size coming from query strings.
const MaxPageSize = 100

// Page is one slice of a list plus the numbers a pager needs.
type Page[T any] struct {
	Items      []T       `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
	HasPrev    bool      `json:"has_prev"`
	HasNext    bool      `json:"has_next"`
	Sort       SortState `json:"sort"`
}

// TotalPages returns ceil(n/size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage keeps page inside [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the requested page of items. The page number is clamped,
// so asking past the end yields the last page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = 1
	}

	total := len(items)
	pages := TotalPages(total, size)
	page = ClampPage(page, pages)

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, items[start:end])

	return Page[T]{
		Items:      out,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
}
