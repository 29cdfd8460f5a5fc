package runtime

// InGroupOf splits items into consecutive groups of at most length
// elements. The last group carries the remainder.
func InGroupOf[T any](items []T, length int) [][]T {
	if len(items) <= length {
		return [][]T{items}
	}

	group := len(items) / length
	if len(items)%length != 0 {
		group++
	}
	groups := make([][]T, 0, group)

	for start := 0; start < len(items); start += length {
		end := start + length
		if end > len(items) {
			end = len(items)
		}
		groups = append(groups, items[start:end])
	}
	return groups
}
