package core

import (
	"errors"
	"testing"
	"time"
)

func ratingPtr(v float64) *float64 {
	return &v
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *Item
		wantErr error
	}{
		{
			name:    "valid item",
			item:    &Item{Name: "Quantum Basics", Rating: ratingPtr(4.5), URL: "https://example.com/q"},
			wantErr: nil,
		},
		{
			name:    "valid item without rating or url",
			item:    &Item{Name: "Cooking"},
			wantErr: nil,
		},
		{
			name:    "zero rating is valid",
			item:    &Item{Name: "Unloved", Rating: ratingPtr(0)},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidItem,
		},
		{
			name:    "empty name",
			item:    &Item{Name: ""},
			wantErr: ErrEmptyName,
		},
		{
			name:    "blank name",
			item:    &Item{Name: "   "},
			wantErr: ErrEmptyName,
		},
		{
			name:    "rating too high",
			item:    &Item{Name: "Overrated", Rating: ratingPtr(7)},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "negative rating",
			item:    &Item{Name: "Underrated", Rating: ratingPtr(-1)},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "malformed url",
			item:    &Item{Name: "Broken", URL: "not a url"},
			wantErr: ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateItem() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateItem() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidItem) {
				t.Errorf("ValidateItem() error = %v, want wrapped %v", err, ErrInvalidItem)
			}
		})
	}
}

func TestValidateHistoryEntry(t *testing.T) {
	past := time.Now().Add(-1 * time.Minute)
	future := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		entry   *HistoryEntry
		wantErr error
	}{
		{
			name:    "valid entry",
			entry:   &HistoryEntry{Query: "quantum", TopK: 5, Timestamp: past},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidHistoryEntry,
		},
		{
			name:    "empty query",
			entry:   &HistoryEntry{Query: "", TopK: 5, Timestamp: past},
			wantErr: ErrInvalidHistoryEntry,
		},
		{
			name:    "negative top k",
			entry:   &HistoryEntry{Query: "q", TopK: -1, Timestamp: past},
			wantErr: ErrInvalidHistoryEntry,
		},
		{
			name:    "future timestamp",
			entry:   &HistoryEntry{Query: "q", TopK: 5, Timestamp: future},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "pre-epoch timestamp",
			entry:   &HistoryEntry{Query: "q", TopK: 5, Timestamp: time.Date(1969, 12, 31, 23, 59, 0, 0, time.UTC)},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHistoryEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateHistoryEntry() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateHistoryEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFeedbackKind(t *testing.T) {
	if err := ValidateFeedbackKind(FeedbackHelpful); err != nil {
		t.Errorf("ValidateFeedbackKind(FeedbackHelpful) = %v, want nil", err)
	}
	if err := ValidateFeedbackKind(FeedbackNotHelpful); err != nil {
		t.Errorf("ValidateFeedbackKind(FeedbackNotHelpful) = %v, want nil", err)
	}
	if err := ValidateFeedbackKind(0); !errors.Is(err, ErrInvalidFeedbackKind) {
		t.Errorf("ValidateFeedbackKind(0) = %v, want %v", err, ErrInvalidFeedbackKind)
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if !IsValidTimestamp(time.Now().Add(-time.Second)) {
		t.Error("past timestamp should be valid")
	}
	if IsValidTimestamp(time.Now().Add(time.Hour)) {
		t.Error("future timestamp should be invalid")
	}
	if !IsValidTimestamp(time.Unix(0, 0)) {
		t.Error("epoch should be valid")
	}
	if IsValidTimestamp(time.Unix(-1, 0)) {
		t.Error("pre-epoch timestamp should be invalid")
	}
}
