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

package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/vectorspace"
)

var (
	columnsMUS = ord.NewSliceSer[int32](varint.Int32)
	valuesMUS  = ord.NewSliceSer[float32](raw.Float32)
	termsMUS   = ord.NewSliceSer[string](ord.String)
)

func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

func MarshalItem(item *core.Item) []byte {
	buf := make([]byte, core.ItemMUS.Size(*item))
	core.ItemMUS.Marshal(*item, buf)
	return buf
}

func UnmarshalItem(data []byte) (*core.Item, error) {
	item, _, err := core.ItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func MarshalHistoryEntry(entry *core.HistoryEntry) []byte {
	buf := make([]byte, core.HistoryEntryMUS.Size(*entry))
	core.HistoryEntryMUS.Marshal(*entry, buf)
	return buf
}

func UnmarshalHistoryEntry(data []byte) (*core.HistoryEntry, error) {
	entry, _, err := core.HistoryEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func MarshalFeedbackTally(tally *core.FeedbackTally) []byte {
	buf := make([]byte, core.FeedbackTallyMUS.Size(*tally))
	core.FeedbackTallyMUS.Marshal(*tally, buf)
	return buf
}

func UnmarshalFeedbackTally(data []byte) (*core.FeedbackTally, error) {
	tally, _, err := core.FeedbackTallyMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &tally, nil
}

func MarshalSnapshotInfo(info *core.SnapshotInfo) []byte {
	buf := make([]byte, core.SnapshotInfoMUS.Size(*info))
	core.SnapshotInfoMUS.Marshal(*info, buf)
	return buf
}

func UnmarshalSnapshotInfo(data []byte) (*core.SnapshotInfo, error) {
	info, _, err := core.SnapshotInfoMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// MarshalRow encodes a sparse row as its column indices followed by its values.
func MarshalRow(row vectorspace.SparseVector) []byte {
	buf := make([]byte, columnsMUS.Size(row.Indices)+valuesMUS.Size(row.Values))
	n := columnsMUS.Marshal(row.Indices, buf)
	valuesMUS.Marshal(row.Values, buf[n:])
	return buf
}

// UnmarshalRow decodes a row written by MarshalRow.
// Structural validity (ordering, bounds) is checked when the matrix is built.
func UnmarshalRow(data []byte) (vectorspace.SparseVector, error) {
	indices, n, err := columnsMUS.Unmarshal(data)
	if err != nil {
		return vectorspace.SparseVector{}, err
	}
	values, _, err := valuesMUS.Unmarshal(data[n:])
	if err != nil {
		return vectorspace.SparseVector{}, err
	}
	if len(indices) != len(values) {
		return vectorspace.SparseVector{}, fmt.Errorf("%w: %d indices, %d values", ErrSerializationFailed, len(indices), len(values))
	}
	return vectorspace.SparseVector{Indices: indices, Values: values}, nil
}

// MarshalVocabulary encodes terms followed by IDF weights, in column order.
func MarshalVocabulary(vocab *vectorspace.Vocabulary) []byte {
	terms, weights := vocab.Terms(), vocab.Weights()
	buf := make([]byte, termsMUS.Size(terms)+valuesMUS.Size(weights))
	n := termsMUS.Marshal(terms, buf)
	valuesMUS.Marshal(weights, buf[n:])
	return buf
}

// UnmarshalVocabulary decodes and validates a vocabulary written by
// MarshalVocabulary.
func UnmarshalVocabulary(data []byte) (*vectorspace.Vocabulary, error) {
	terms, n, err := termsMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	weights, _, err := valuesMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	return vectorspace.NewVocabulary(terms, weights)
}
