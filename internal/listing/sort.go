package listing

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownSortField = errors.New("unknown sort field")

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection defaults to Asc for anything that is not "desc".
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// SortState is the current sort column and direction of a list view.
type SortState struct {
	Field string    `json:"field,omitempty"`
	Order Direction `json:"order,omitempty"`
}

// Toggle applies a click on a column header: the same field flips the
// direction, another field starts ascending.
func (s SortState) Toggle(field string) SortState {
	if field == "" {
		return s
	}
	if s.Field == field {
		if s.Order == Desc {
			return SortState{Field: field, Order: Asc}
		}
		return SortState{Field: field, Order: Desc}
	}
	return SortState{Field: field, Order: Asc}
}

// Comparator orders two items the way cmp.Compare does.
type Comparator[T any] func(a, b T) int

// Comparators maps a sort field name to its comparator.
type Comparators[T any] map[string]Comparator[T]

// Sort returns a sorted copy of items. An empty field leaves the order as is.
func Sort[T any](items []T, state SortState, comparators Comparators[T]) ([]T, error) {
	out := slices.Clone(items)
	if state.Field == "" {
		return out, nil
	}

	less, ok := comparators[state.Field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSortField, state.Field)
	}

	slices.SortStableFunc(out, func(a, b T) int {
		if state.Order == Desc {
			return less(b, a)
		}
		return less(a, b)
	})
	return out, nil
}

// ByString compares a string attribute without regard to case.
func ByString[T any](attr func(T) string) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(strings.ToLower(attr(a)), strings.ToLower(attr(b)))
	}
}

// ByNumber compares an ordered numeric attribute.
func ByNumber[T any, N cmp.Ordered](attr func(T) N) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(attr(a), attr(b))
	}
}
