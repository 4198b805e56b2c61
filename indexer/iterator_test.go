package indexer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/coursematch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []*core.Item {
	items := make([]*core.Item, n)
	for i := range items {
		items[i] = &core.Item{Name: fmt.Sprintf("Course %d", i)}
	}
	return items
}

func TestItemIterator_Batches(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		batchSize int
		want      []int
	}{
		{name: "exact multiple", items: 6, batchSize: 3, want: []int{3, 3}},
		{name: "remainder", items: 7, batchSize: 3, want: []int{3, 3, 1}},
		{name: "single batch", items: 2, batchSize: 10, want: []int{2}},
		{name: "empty", items: 0, batchSize: 3, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewItemIterator(makeItems(tt.items), tt.batchSize)

			var sizes, offsets []int
			err := it.ForEach(context.Background(), func(offset int, batch []*core.Item) error {
				sizes = append(sizes, len(batch))
				offsets = append(offsets, offset)
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, sizes)
			assert.Equal(t, len(tt.want), it.Batches())
			for i, off := range offsets {
				assert.Equal(t, i*tt.batchSize, off)
			}
		})
	}
}

func TestItemIterator_DefaultBatchSize(t *testing.T) {
	it := NewItemIterator(makeItems(250), 0)
	assert.Equal(t, 3, it.Batches())
}

func TestItemIterator_StopsOnError(t *testing.T) {
	it := NewItemIterator(makeItems(10), 2)
	boom := errors.New("boom")

	calls := 0
	err := it.ForEach(context.Background(), func(offset int, batch []*core.Item) error {
		calls++
		if offset == 4 {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestItemIterator_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	it := NewItemIterator(makeItems(10), 2)

	calls := 0
	err := it.ForEach(ctx, func(offset int, batch []*core.Item) error {
		calls++
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
