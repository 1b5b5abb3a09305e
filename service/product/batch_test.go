package product

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowBatcher_RowLimit(t *testing.T) {
	b := newRowBatcher[int](2, 0, nil)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, b.chunks([]int{1, 2, 3, 4, 5}))
	assert.Nil(t, b.chunks(nil))
}

func TestRowBatcher_ByteLimit(t *testing.T) {
	// every row costs 16 bytes of overhead plus its length
	b := newRowBatcher(100, 60, func(s string) int { return len(s) })
	chunks := b.chunks([]string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"})
	assert.Equal(t, [][]string{{"aaaaaaaaaa", "bbbbbbbbbb"}, {"cccccccccc"}}, chunks)
}

func TestRowBatcher_OversizedRowGetsOwnChunk(t *testing.T) {
	b := newRowBatcher(100, 20, func(s string) int { return len(s) })
	chunks := b.chunks([]string{"a-very-long-value-indeed", "x"})
	require.Len(t, chunks, 2)
	assert.Equal(t, []string{"a-very-long-value-indeed"}, chunks[0])
	assert.Equal(t, []string{"x"}, chunks[1])
}

func TestRowBatcher_EachStopsOnError(t *testing.T) {
	b := newRowBatcher[int](1, 0, nil)
	calls := 0
	err := b.each([]int{1, 2, 3}, func(chunk []int) error {
		calls++
		if chunk[0] == 2 {
			return errors.New("boom")
		}
		return nil
	})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 2, calls)
}

func TestChunkIDs(t *testing.T) {
	assert.Equal(t, [][]uint{{1, 2, 3}, {4}}, chunkIDs([]uint{1, 2, 3, 4}, 3))
	assert.Nil(t, chunkIDs([]uint{}, 3))

	big := make([]uint, 2500)
	assert.Len(t, chunkIDs(big, 0), 3)
}
