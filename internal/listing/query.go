package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params is what a list request asks for.
type Params struct {
	Query    string
	Sort     SortState
	Page     int
	PageSize int
}

// ParseParams reads q, sort, order, toggle, page and page_size.
// toggle=<field> applies SortState.Toggle to the sort/order pair, so a
// client can send back the state it received plus the clicked column.
func ParseParams(values url.Values, defaultSize int) (Params, error) {
	p := Params{
		Query:    strings.TrimSpace(values.Get("q")),
		Page:     1,
		PageSize: defaultSize,
	}

	if field := values.Get("sort"); field != "" {
		p.Sort = SortState{Field: field, Order: ParseDirection(values.Get("order"))}
	}
	if toggle := values.Get("toggle"); toggle != "" {
		p.Sort = p.Sort.Toggle(toggle)
	}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, fmt.Errorf("invalid page %q", raw)
		}
		p.Page = n
	}

	if raw := values.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Params{}, fmt.Errorf("invalid page_size %q", raw)
		}
		p.PageSize = n
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	return p, nil
}

// Apply runs filter, sort and paginate in that order.
func Apply[T any](items []T, p Params, fields Fields[T], comparators Comparators[T]) (Page[T], error) {
	filtered := Filter(items, p.Query, fields)

	sorted, err := Sort(filtered, p.Sort, comparators)
	if err != nil {
		return Page[T]{}, err
	}

	page := Paginate(sorted, p.Page, p.PageSize)
	page.Sort = p.Sort
	return page, nil
}
