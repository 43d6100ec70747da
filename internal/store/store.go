// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wordmatch/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for settings and round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			random INTEGER NOT NULL,
			hint INTEGER NOT NULL,
			entries INTEGER NOT NULL,
			mistakes INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_mode ON rounds(mode);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	return err
}

// InsertRound stores a finished round.
func (s *Store) InsertRound(ctx context.Context, rec model.RoundRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (started_at, ended_at, mode, random, hint, entries, mistakes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.EndedAt.UTC().Format(time.RFC3339Nano),
		string(rec.Mode),
		boolInt(rec.Random),
		boolInt(rec.Hint),
		rec.Entries,
		rec.Mistakes,
		rec.EndedAt.Sub(rec.StartedAt).Milliseconds(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRounds returns rounds filtered by stats config, oldest first. When
// cfg.Last is positive only the most recent Last rounds are returned.
func (s *Store) ListRounds(ctx context.Context, cfg model.StatsConfig) ([]model.RoundAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, string(cfg.Mode))
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	limit := ""
	if cfg.Last > 0 {
		limit = "LIMIT ?"
		args = append(args, cfg.Last)
	}
	query := fmt.Sprintf(`SELECT id, mode, ended_at, entries, mistakes, duration_ms FROM (
		SELECT * FROM rounds
		WHERE %s
		ORDER BY ended_at DESC, id DESC
		%s
	) ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundAggregate
	for rows.Next() {
		var agg model.RoundAggregate
		var mode, endedAt string
		if err := rows.Scan(&agg.RoundID, &mode, &endedAt, &agg.Entries, &agg.Mistakes, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.Mode = model.Mode(mode)
		agg.EndedAt = parsed
		rounds = append(rounds, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
