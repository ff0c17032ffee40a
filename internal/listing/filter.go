package listing

import "strings"

// Fields extracts the searchable text of an item.
type Fields[T any] func(T) []string

// Matches reports whether any field contains query, ignoring case.
// An empty query matches everything.
func Matches(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter keeps the items whose fields match query. The input is not modified.
func Filter[T any](items []T, query string, fields Fields[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(query, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}

// Where keeps the items for which keep returns true.
func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// EqualFold returns a predicate for an exact, case-insensitive attribute filter.
// An empty want keeps everything.
func EqualFold[T any](want string, attr func(T) string) func(T) bool {
	return func(it T) bool {
		return want == "" || strings.EqualFold(attr(it), want)
	}
}
