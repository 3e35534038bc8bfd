package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
	"github.com/fyrsmithlabs/verdant/internal/domain"
)

//go:embed schema.sql
var schema string

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens (creating if necessary) the database at path and applies
// the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

const entryColumns = "id, created_at, title, text, sentiment_score, sentiment_label, themes"

func (s *SQLite) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLite) Get(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id = ?", id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Entry{}, ErrNotFound
	}
	return e, err
}

func (s *SQLite) Create(ctx context.Context, title, text string) (domain.Entry, error) {
	e := newEntry(title, text, s.now())

	themes, err := json.Marshal(e.Themes)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("encode themes: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO entries ("+entryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.CreatedAt, e.Title, e.Text, e.Sentiment.Score, string(e.Sentiment.Label), string(themes))
	if err != nil {
		return domain.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	return e, nil
}

func (s *SQLite) Update(ctx context.Context, id, title, text string) (domain.Entry, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return domain.Entry{}, err
	}
	applyUpdate(&e, title, text)

	themes, err := json.Marshal(e.Themes)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("encode themes: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE entries SET title = ?, text = ?, sentiment_score = ?, sentiment_label = ?, themes = ? WHERE id = ?",
		e.Title, e.Text, e.Sentiment.Score, string(e.Sentiment.Label), string(themes), id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("update entry: %w", err)
	}
	return e, nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.Entry, error) {
	var e domain.Entry
	var label, themes string
	if err := row.Scan(&e.ID, &e.CreatedAt, &e.Title, &e.Text, &e.Sentiment.Score, &label, &themes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Entry{}, err
		}
		return domain.Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	e.Sentiment.Label = analysis.SentimentLabel(label)
	if err := json.Unmarshal([]byte(themes), &e.Themes); err != nil {
		return domain.Entry{}, fmt.Errorf("decode themes: %w", err)
	}
	return e, nil
}
