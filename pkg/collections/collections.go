// Package collections holds small generic slice helpers.
package collections

// Apply maps each item through applicator.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}
