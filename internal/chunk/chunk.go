// Package chunk provides fixed-size slice partitioning.
package chunk

// Split divides items into consecutive chunks of at most size elements.
// The chunks share backing storage with the input. A size below 1 yields
// a single chunk containing everything.
func Split[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size < 1 {
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
