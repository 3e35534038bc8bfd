// Package store persists journal entries. Two implementations exist: an
// in-process map for tests and ephemeral runs, and a SQLite database for
// durable storage. Both derive sentiment and themes from the text on every
// write so stored metadata can never drift from the content.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
	"github.com/fyrsmithlabs/verdant/internal/domain"
)

// ErrNotFound is returned when no entry has the requested ID.
var ErrNotFound = errors.New("store: entry not found")

// Store is the entry persistence contract. List returns entries newest
// first.
type Store interface {
	List(ctx context.Context) ([]domain.Entry, error)
	Get(ctx context.Context, id string) (domain.Entry, error)
	Create(ctx context.Context, title, text string) (domain.Entry, error)
	Update(ctx context.Context, id, title, text string) (domain.Entry, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// newEntry builds a fresh entry with derived metadata.
func newEntry(title, text string, now time.Time) domain.Entry {
	return domain.Entry{
		ID:        uuid.New().String(),
		CreatedAt: now.UnixMilli(),
		Title:     normalizeTitle(title),
		Text:      text,
		Sentiment: analysis.Score(text),
		Themes:    analysis.Themes(text),
	}
}

// applyUpdate rewrites the mutable fields and re-derives metadata. ID and
// CreatedAt are untouched.
func applyUpdate(e *domain.Entry, title, text string) {
	e.Title = normalizeTitle(title)
	e.Text = text
	e.Sentiment = analysis.Score(text)
	e.Themes = analysis.Themes(text)
}

func normalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return domain.DefaultTitle
	}
	return title
}
