// Package collection provides generic, functional-style helpers for slices.
//
//	low := collection.Filter(products, func(p models.Product) bool { return p.StockQuantity < 10 })
//	names := collection.Map(products, func(p models.Product) string { return p.Name })
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true, keeping their order.
// The result is never nil.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reduce folds s into a single value using fn, starting with initial.
func Reduce[T, R any](s []T, initial R, fn func(carry R, item T) R) R {
	carry := initial
	for _, v := range s {
		carry = fn(carry, v)
	}
	return carry
}

// Count returns how many elements satisfy fn.
func Count[T any](s []T, fn func(T) bool) int {
	return Reduce(s, 0, func(n int, v T) int {
		if fn(v) {
			return n + 1
		}
		return n
	})
}
