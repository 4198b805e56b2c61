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

package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/storage"
)

// maxConflictRetries bounds retries of a tally update that lost a write race.
const maxConflictRetries = 5

// FeedbackRepository implements storage.FeedbackRepository for BadgerDB.
type FeedbackRepository struct {
	backend *Backend
}

var _ storage.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(backend *Backend) *FeedbackRepository {
	return &FeedbackRepository{
		backend: backend,
	}
}

// Record adds one vote to the tally.
func (r *FeedbackRepository) Record(ctx context.Context, kind core.FeedbackKind) (*core.FeedbackTally, error) {
	if err := core.ValidateFeedbackKind(kind); err != nil {
		return nil, err
	}

	var tally *core.FeedbackTally
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = r.backend.WithTx(func(tx *badger.Txn) error {
			var readErr error
			tally, readErr = readTally(tx)
			if readErr != nil {
				return readErr
			}

			switch kind {
			case core.FeedbackHelpful:
				tally.Helpful++
			case core.FeedbackNotHelpful:
				tally.NotHelpful++
			}
			tally.UpdatedAt = time.Now().UTC()

			if err := tx.Set([]byte(feedbackTallyKey), storage.MarshalFeedbackTally(tally)); err != nil {
				return err
			}
			return tx.Commit()
		}, true)

		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		r.backend.logger.Debug("feedback tally conflict, retrying", "attempt", attempt+1)
	}

	if err != nil {
		return nil, err
	}
	return tally, nil
}

// Tally returns the current tally, or a zero tally if no votes exist.
func (r *FeedbackRepository) Tally(ctx context.Context) (*core.FeedbackTally, error) {
	var tally *core.FeedbackTally
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		tally, err = readTally(tx)
		return err
	}, false)
	return tally, err
}

// Reset clears the tally.
func (r *FeedbackRepository) Reset(ctx context.Context) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete([]byte(feedbackTallyKey)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func readTally(tx *badger.Txn) (*core.FeedbackTally, error) {
	item, err := tx.Get([]byte(feedbackTallyKey))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &core.FeedbackTally{}, nil
		}
		return nil, err
	}

	var tally *core.FeedbackTally
	err = item.Value(func(val []byte) error {
		var err error
		tally, err = storage.UnmarshalFeedbackTally(val)
		return err
	})
	return tally, err
}
