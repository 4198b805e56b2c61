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

import "errors"

// Domain validation errors
var (
	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidHistoryEntry indicates a HistoryEntry failed validation.
	ErrInvalidHistoryEntry = errors.New("invalid history entry")

	// ErrInvalidTimestamp indicates a timestamp before the Unix epoch or in the future.
	ErrInvalidTimestamp = errors.New("timestamp must be between the Unix epoch and now")

	// ErrEmptyName indicates the item Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidRating indicates a rating outside of [0, 5].
	ErrInvalidRating = errors.New("rating must be between 0 and 5")

	// ErrInvalidURL indicates a malformed item URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidFeedbackKind indicates an invalid FeedbackKind value.
	ErrInvalidFeedbackKind = errors.New("invalid feedback kind")
)
