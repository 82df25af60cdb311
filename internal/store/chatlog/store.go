// Package chatlog is the append-only record of non-crisis turns plus the
// aggregate queries the dashboard reads.
package chatlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
)

const timestampLayout = "2006-01-02 15:04:05"

const createChatsTableSQL = `
CREATE TABLE IF NOT EXISTS chats (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	message TEXT NOT NULL,
	emotion TEXT NOT NULL,
	timestamp TEXT NOT NULL
)`

const insertChatSQL = `
INSERT INTO chats (username, message, emotion, timestamp) VALUES (?, ?, ?, ?)`

// Entry is one logged turn. Immutable once written.
type Entry struct {
	ID        int64
	Name      string
	Message   string
	Emotion   emotion.Label
	Timestamp time.Time
}

// Store wraps the sqlite-backed chat log.
type Store struct {
	db *sql.DB
}

// Open connects to (or creates) the sqlite database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection serializes writers, so a completed append is fully
	// visible to subsequent reads.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(createChatsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create chats table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a turn and returns the stored entry with its assigned id.
func (s *Store) Append(ctx context.Context, name, message string, label emotion.Label, ts time.Time) (Entry, error) {
	res, err := s.db.ExecContext(ctx, insertChatSQL, name, message, string(label), ts.UTC().Format(timestampLayout))
	if err != nil {
		return Entry{}, fmt.Errorf("insert chat: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("read chat id: %w", err)
	}
	return Entry{ID: id, Name: name, Message: message, Emotion: label, Timestamp: ts.UTC()}, nil
}

// CountAll returns the number of logged turns.
func (s *Store) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chats`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count chats: %w", err)
	}
	return count, nil
}

// CountByEmotion groups logged turns by emotion. Labels with zero rows are
// omitted.
func (s *Store) CountByEmotion(ctx context.Context) (map[emotion.Label]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT emotion, COUNT(*) FROM chats GROUP BY emotion`)
	if err != nil {
		return nil, fmt.Errorf("group chats by emotion: %w", err)
	}
	defer rows.Close()

	counts := make(map[emotion.Label]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("scan emotion count: %w", err)
		}
		counts[emotion.Label(label)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emotion counts: %w", err)
	}
	return counts, nil
}

// MostFrequent returns the emotion with the most logged turns, or "none" when
// the log is empty. Ties break on the lexicographically smallest label.
func (s *Store) MostFrequent(ctx context.Context) (string, error) {
	var label string
	err := s.db.QueryRowContext(ctx,
		`SELECT emotion FROM chats GROUP BY emotion ORDER BY COUNT(*) DESC, emotion ASC LIMIT 1`,
	).Scan(&label)
	if err == sql.ErrNoRows {
		return "none", nil
	}
	if err != nil {
		return "", fmt.Errorf("query most frequent emotion: %w", err)
	}
	return label, nil
}
