package product

// rowBatcher splits rows for multi-row statements. A chunk is closed when it
// reaches maxRows or when adding the next row would push the estimated
// statement size over maxBytes. A single oversized row still gets a chunk.
type rowBatcher[T any] struct {
	maxRows  int
	maxBytes int
	size     func(T) int
}

func newRowBatcher[T any](maxRows, maxBytes int, size func(T) int) rowBatcher[T] {
	return rowBatcher[T]{maxRows: maxRows, maxBytes: maxBytes, size: size}
}

func (b rowBatcher[T]) chunks(rows []T) [][]T {
	if len(rows) == 0 {
		return nil
	}
	var out [][]T
	start, bytes := 0, 0
	for i, r := range rows {
		n := 16
		if b.size != nil {
			n += b.size(r)
		}
		full := b.maxRows > 0 && i-start >= b.maxRows
		over := b.maxBytes > 0 && i > start && bytes+n > b.maxBytes
		if full || over {
			out = append(out, rows[start:i])
			start, bytes = i, 0
		}
		bytes += n
	}
	return append(out, rows[start:])
}

// each runs fn for every chunk and stops at the first error.
func (b rowBatcher[T]) each(rows []T, fn func([]T) error) error {
	for _, chunk := range b.chunks(rows) {
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

// chunkIDs splits an id list for IN (...) lookups.
func chunkIDs[T any](ids []T, size int) [][]T {
	if size <= 0 {
		size = 1000
	}
	var out [][]T
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[i:end])
	}
	return out
}
