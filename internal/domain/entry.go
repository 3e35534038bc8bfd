// Package domain holds the journal entry model shared by the store and the
// aggregators.
package domain

import (
	"sort"
	"time"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
)

// DefaultTitle is used when an entry is created or updated with an empty or
// whitespace-only title.
const DefaultTitle = "Untitled Entry"

// Entry is the single persisted entity: one user-authored journal record
// with derived sentiment and theme metadata. ID and CreatedAt are immutable
// after creation; Sentiment and Themes are re-derived from Text on every
// write and are never user-editable directly.
type Entry struct {
	ID        string             `json:"id"`
	CreatedAt int64              `json:"createdAt"` // milliseconds since epoch
	Title     string             `json:"title"`
	Text      string             `json:"text"`
	Sentiment analysis.Sentiment `json:"sentiment"`
	Themes    []string           `json:"themes"`
}

// Time returns the creation timestamp as a time.Time in the local zone.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.CreatedAt)
}

// SentimentValue returns the numeric sentiment score, falling back to a
// label-derived value for entries that arrived over the wire without one:
// positive 0.6, negative -0.6, neutral 0. An explicit zero score is kept.
func (e Entry) SentimentValue() float64 {
	return e.Sentiment.Value()
}

// SortedByCreatedAtAsc returns a copy of entries ordered oldest first. The
// store does not guarantee insertion order, so windowing code re-sorts.
func SortedByCreatedAtAsc(entries []Entry) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt < sorted[j].CreatedAt
	})
	return sorted
}
