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

package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - Name must not be blank
//   - Rating, when present, must be within [0, 5]
//   - URL, when present, must be an absolute URL
//
// NOT validated (free-form catalog data):
//   - Difficulty and Topic labels
//   - Skills (may be empty)
//   - ID (derived by storage)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyName)
	}

	if err := validate.Struct(item); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, translate(err))
	}

	return nil
}

// ValidateHistoryEntry validates a HistoryEntry before it is persisted.
func ValidateHistoryEntry(entry *HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidHistoryEntry)
	}

	if err := validate.Struct(entry); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, translate(err))
	}

	if !IsValidTimestamp(entry.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateFeedbackKind validates that a FeedbackKind has a valid value.
func ValidateFeedbackKind(kind FeedbackKind) error {
	if kind != FeedbackHelpful && kind != FeedbackNotHelpful {
		return fmt.Errorf("%w: value %d", ErrInvalidFeedbackKind, kind)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid: not before the Unix epoch
// and not in the future. History keys encode microseconds since the epoch as
// an unsigned integer.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.Before(time.Unix(0, 0)) && !ts.After(time.Now())
}

// translate maps validator field errors onto domain sentinels.
func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	switch fe.Field() {
	case "Name":
		return ErrEmptyName
	case "Rating":
		return fmt.Errorf("%w: got %v", ErrInvalidRating, fe.Value())
	case "URL":
		return fmt.Errorf("%w: %q", ErrInvalidURL, fe.Value())
	}
	return fmt.Errorf("field %s failed %q", fe.Field(), fe.Tag())
}
