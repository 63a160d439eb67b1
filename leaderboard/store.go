package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// MaxNameLength bounds the player name stored with a score.
const MaxNameLength = 32

// ErrInvalidEntry is returned for entries without a usable player name.
var ErrInvalidEntry = errors.New("invalid leaderboard entry")

// Entry is one submitted score.
type Entry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Score     uint      `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate trims the name and checks it.
func (e *Entry) Validate() error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidEntry)
	}
	if len(e.Name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidEntry, MaxNameLength)
	}
	return nil
}

// Store wraps the SQLite database holding submitted scores.
type Store struct {
	conn *sql.DB
}

// OpenStore opens (or creates) the score database at path. ":memory:" gives a
// private in-memory database.
func OpenStore(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// every pooled connection to :memory: would see its own empty database
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC, id ASC);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate scores: %w", err)
	}
	return nil
}

// Submit validates and stores e, returning it with its id and timestamp set.
func (s *Store) Submit(ctx context.Context, e Entry) (Entry, error) {
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	res, err := s.conn.ExecContext(ctx,
		"INSERT INTO scores (name, score, created_at) VALUES (?, ?, ?)",
		e.Name, int64(e.Score), e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert score: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("insert score: %w", err)
	}
	return e, nil
}

// Top returns up to limit entries, highest score first. Ties keep
// submission order.
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}

	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, name, score, created_at FROM scores ORDER BY score DESC, id ASC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e       Entry
			score   int64
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &score, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.Score = uint(score)
		e.CreatedAt = time.UnixMilli(created).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
