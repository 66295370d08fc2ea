// Package collection has small generic helpers for slices of records.
//
//	names := collection.Map(users, func(u models.User) string { return u.Name })
//	byOwner := collection.GroupBy(orders, func(o models.Order) uint { return o.UserID })
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// GroupBy partitions s into a map keyed by fn, keeping the order of s within
// each group.
func GroupBy[T any, K comparable](s []T, fn func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		k := fn(v)
		out[k] = append(out[k], v)
	}
	return out
}
