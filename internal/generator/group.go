package generator

// Group partitions items into contiguous chunks of size, preserving order.
// A size of 0 or less yields one singleton group per item. The final chunk
// may be shorter than size.
func Group(items []string, size int) [][]string {
	if size <= 0 {
		groups := make([][]string, len(items))
		for i, item := range items {
			groups[i] = []string{item}
		}
		return groups
	}
	groups := make([][]string, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		groups = append(groups, items[start:end])
	}
	return groups
}
