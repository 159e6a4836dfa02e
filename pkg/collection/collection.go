// Package collection provides generic, functional-style helpers for slices.
// Used by the admin reports to group and roll up orders and products.
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reduce folds s into a single value starting from init.
func Reduce[T, R any](s []T, init R, fn func(R, T) R) R {
	acc := init
	for _, v := range s {
		acc = fn(acc, v)
	}
	return acc
}

// GroupBy buckets elements of s by the key fn returns.
func GroupBy[T any, K comparable](s []T, fn func(T) K) map[K][]T {
	out := map[K][]T{}
	for _, v := range s {
		k := fn(v)
		out[k] = append(out[k], v)
	}
	return out
}

// CountBy counts elements of s per key.
func CountBy[T any, K comparable](s []T, fn func(T) K) map[K]int {
	out := map[K]int{}
	for _, v := range s {
		out[fn(v)]++
	}
	return out
}
