package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
	"github.com/fyrsmithlabs/verdant/internal/domain"
)

// Both implementations run through the same contract suite.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

// setClock gives the store a strictly increasing clock so creation order is
// unambiguous even within one millisecond.
func setClock(t *testing.T, s Store) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	step := 0
	tick := func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	switch impl := s.(type) {
	case *Memory:
		impl.now = tick
	case *SQLite:
		impl.now = tick
	default:
		t.Fatalf("unknown store type %T", s)
	}
}

func TestStore_CreateDerivesMetadata(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			e, err := s.Create(ctx, "My Day", "happy wonderful day at the office")
			require.NoError(t, err)

			assert.NotEmpty(t, e.ID)
			assert.NotZero(t, e.CreatedAt)
			assert.Equal(t, "My Day", e.Title)
			assert.Equal(t, analysis.LabelPositive, e.Sentiment.Label)
			assert.Contains(t, e.Themes, "work")

			got, err := s.Get(ctx, e.ID)
			require.NoError(t, err)
			assert.Equal(t, e, got)
		})
	}
}

func TestStore_BlankTitleDefaults(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			e, err := s.Create(context.Background(), "   ", "some text")
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultTitle, e.Title)
		})
	}
}

func TestStore_UpdateRederivesMetadata(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			e, err := s.Create(ctx, "Before", "happy wonderful day")
			require.NoError(t, err)

			updated, err := s.Update(ctx, e.ID, "After", "terrible awful day at the office")
			require.NoError(t, err)

			assert.Equal(t, e.ID, updated.ID)
			assert.Equal(t, e.CreatedAt, updated.CreatedAt)
			assert.Equal(t, "After", updated.Title)
			assert.Equal(t, analysis.LabelNegative, updated.Sentiment.Label)
			assert.Contains(t, updated.Themes, "work")

			got, err := s.Get(ctx, e.ID)
			require.NoError(t, err)
			assert.Equal(t, updated, got)
		})
	}
}

func TestStore_UpdateMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Update(context.Background(), "no-such-id", "t", "x")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "no-such-id")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			e, err := s.Create(ctx, "T", "text")
			require.NoError(t, err)

			require.NoError(t, s.Delete(ctx, e.ID))
			_, err = s.Get(ctx, e.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, s.Delete(ctx, e.ID), ErrNotFound)
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			setClock(t, s)

			first, err := s.Create(ctx, "first", "a")
			require.NoError(t, err)
			second, err := s.Create(ctx, "second", "b")
			require.NoError(t, err)

			entries, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, second.ID, entries[0].ID)
			assert.Equal(t, first.ID, entries[1].ID)
		})
	}
}

func TestStore_ThemeFallbackSurvivesRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			e, err := s.Create(ctx, "T", "nothing thematic here at all")
			require.NoError(t, err)
			assert.Equal(t, []string{"general"}, e.Themes)

			got, err := s.Get(ctx, e.ID)
			require.NoError(t, err)
			assert.Equal(t, []string{"general"}, got.Themes)
		})
	}
}
