// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package indexer

import (
	"context"

	"github.com/poiesic/coursematch/core"
)

// DefaultBatchSize is the default number of items written per batch.
const DefaultBatchSize = 100

// ItemIterator walks a catalog in fixed-size batches.
type ItemIterator struct {
	items     []*core.Item
	batchSize int
}

// NewItemIterator creates an iterator over items.
// A non-positive batchSize falls back to DefaultBatchSize.
func NewItemIterator(items []*core.Item, batchSize int) *ItemIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ItemIterator{
		items:     items,
		batchSize: batchSize,
	}
}

// ForEach calls fn with each batch and the catalog position of its first item.
// Iteration stops on the first error from fn. Context cancellation is checked
// between batches.
func (it *ItemIterator) ForEach(ctx context.Context, fn func(offset int, batch []*core.Item) error) error {
	for start := 0; start < len(it.items); start += it.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+it.batchSize, len(it.items))
		if err := fn(start, it.items[start:end]); err != nil {
			return err
		}
	}

	return nil
}

// Batches returns the number of batches ForEach will produce.
func (it *ItemIterator) Batches() int {
	return (len(it.items) + it.batchSize - 1) / it.batchSize
}
