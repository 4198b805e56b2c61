package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestItem_Key(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "basic item",
			item: Item{Name: "Intro to Qubits", Provider: "Coursera"},
			want: "(Coursera,Intro to Qubits)",
		},
		{
			name: "empty item",
			item: Item{},
			want: "(,)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.item.Key()
			if got != tt.want {
				t.Errorf("Item.Key() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItem_RatingOrZero(t *testing.T) {
	rating := 4.5
	rated := Item{Name: "rated", Rating: &rating}
	unrated := Item{Name: "unrated"}

	if got := rated.RatingOrZero(); got != 4.5 {
		t.Errorf("RatingOrZero() = %v, want 4.5", got)
	}
	if got := unrated.RatingOrZero(); got != 0 {
		t.Errorf("RatingOrZero() = %v, want 0", got)
	}
}

func TestItem_Text(t *testing.T) {
	item := Item{
		Name:        "Quantum Basics",
		Description: "Learn qubits",
		Skills:      []string{"linear algebra", "python"},
		Topic:       "Data & AI",
	}
	want := "Quantum Basics Learn qubits linear algebra python Data & AI"
	if got := item.Text(); got != want {
		t.Errorf("Item.Text() = %q, want %q", got, want)
	}

	bare := Item{Name: "Only Name"}
	if got := bare.Text(); got != "Only Name " {
		t.Errorf("Item.Text() = %q, want %q", got, "Only Name ")
	}
}

func TestFeedbackTally(t *testing.T) {
	tests := []struct {
		name      string
		tally     FeedbackTally
		wantTotal int
		wantRate  float64
	}{
		{name: "no votes", tally: FeedbackTally{}, wantTotal: 0, wantRate: 0},
		{name: "all helpful", tally: FeedbackTally{Helpful: 4}, wantTotal: 4, wantRate: 100},
		{name: "mixed", tally: FeedbackTally{Helpful: 3, NotHelpful: 1}, wantTotal: 4, wantRate: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tally.Total(); got != tt.wantTotal {
				t.Errorf("Total() = %d, want %d", got, tt.wantTotal)
			}
			if got := tt.tally.PositiveRate(); got != tt.wantRate {
				t.Errorf("PositiveRate() = %v, want %v", got, tt.wantRate)
			}
		})
	}
}

func TestFeedbackKind_String(t *testing.T) {
	if FeedbackHelpful.String() != "helpful" {
		t.Errorf("unexpected name %q", FeedbackHelpful.String())
	}
	if FeedbackNotHelpful.String() != "not_helpful" {
		t.Errorf("unexpected name %q", FeedbackNotHelpful.String())
	}
	if FeedbackKind(9).String() != "unknown" {
		t.Errorf("unexpected name %q", FeedbackKind(9).String())
	}
}
