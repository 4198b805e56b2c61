package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Items use content-based hashing, history entries use database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Item is one row of the course catalog.
// The row position in the catalog is its identity for ranking purposes; Id is
// derived from Name and Provider and only used by storage.
type Item struct {
	Id            ID
	Name          string `validate:"required"`
	Provider      string
	Description   string
	Skills        []string // Lower-cased skill tags, in source order
	Difficulty    string
	Topic         string
	Rating        *float64 `validate:"omitnil,gte=0,lte=5"`
	Specialized   bool     // Mentions the specialized topic (quantum computing)
	LocaleContext bool     // Carries locale-specific context
	URL           string   `validate:"omitempty,url"`
}

// RatingOrZero returns the rating, or 0 if the item is unrated.
func (i *Item) RatingOrZero() float64 {
	if i.Rating == nil {
		return 0
	}
	return *i.Rating
}

// Text returns the document text the vector space is fitted on.
func (i *Item) Text() string {
	parts := make([]string, 0, 4)
	parts = append(parts, i.Name, i.Description)
	if len(i.Skills) > 0 {
		parts = append(parts, strings.Join(i.Skills, " "))
	}
	if i.Topic != "" {
		parts = append(parts, i.Topic)
	}
	return strings.Join(parts, " ")
}

// Key returns the content tuple used to derive the item ID.
func (i *Item) Key() string {
	return "(" + i.Provider + "," + i.Name + ")"
}

// Result is a ranked item together with its similarity to the query.
type Result struct {
	Item       *Item
	Row        int // Position in the catalog
	Similarity float32
}

// HistoryEntry records a single recommendation request.
type HistoryEntry struct {
	Id            ID
	Query         string `validate:"required"`
	Normalized    string
	TopK          int `validate:"gte=0"`
	Difficulties  []string
	Topics        []string
	MinRating     float64
	ResultNames   []string // Names of returned items, in rank order
	TopSimilarity float32
	LatencyMillis float64
	Timestamp     time.Time // When the request was made
}

// FeedbackKind identifies a user verdict on a set of recommendations.
type FeedbackKind int

const (
	// FeedbackHelpful marks recommendations as helpful.
	FeedbackHelpful FeedbackKind = iota + 1
	// FeedbackNotHelpful marks recommendations as not helpful.
	FeedbackNotHelpful
)

// String returns the wire name of the feedback kind.
func (k FeedbackKind) String() string {
	switch k {
	case FeedbackHelpful:
		return "helpful"
	case FeedbackNotHelpful:
		return "not_helpful"
	default:
		return "unknown"
	}
}

// FeedbackTally accumulates feedback counters.
type FeedbackTally struct {
	Helpful    int
	NotHelpful int
	UpdatedAt  time.Time
}

// Total returns the number of feedback events recorded.
func (f FeedbackTally) Total() int {
	return f.Helpful + f.NotHelpful
}

// PositiveRate returns the share of helpful votes in percent, or 0 with no votes.
func (f FeedbackTally) PositiveRate() float64 {
	total := f.Total()
	if total == 0 {
		return 0
	}
	return float64(f.Helpful) / float64(total) * 100.0
}

// SnapshotInfo describes a persisted catalog snapshot.
type SnapshotInfo struct {
	Items   int
	Rows    int
	Terms   int
	BuiltAt time.Time
}
