package signalcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"heatcut/internal/signal"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Entry is one cached signal fetch.
type Entry struct {
	VideoID   string
	Kind      signal.Kind
	Duration  float64
	Payload   []byte
	FetchedAt time.Time
}

// Store manages signal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached entry for a video and kind, if present and younger
// than maxAge. A zero maxAge disables expiry.
func (s *Store) Get(ctx context.Context, videoID string, kind signal.Kind, maxAge time.Duration) (*Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT duration, payload, fetched_at FROM signals WHERE video_id = ? AND kind = ?`,
		videoID, string(kind),
	)

	var (
		duration  float64
		payload   []byte
		fetchedAt string
	)
	if err := row.Scan(&duration, &payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, false, fmt.Errorf("parse fetched_at %q: %w", fetchedAt, err)
	}
	if maxAge > 0 && time.Since(parsed) > maxAge {
		return nil, false, nil
	}

	return &Entry{
		VideoID:   videoID,
		Kind:      kind,
		Duration:  duration,
		Payload:   payload,
		FetchedAt: parsed,
	}, true, nil
}

// Put upserts a cache entry. A zero FetchedAt is stamped with the current
// time.
func (s *Store) Put(ctx context.Context, entry Entry) error {
	if entry.VideoID == "" {
		return errors.New("video id required")
	}
	if _, err := signal.ParseKind(string(entry.Kind)); err != nil {
		return err
	}
	fetchedAt := entry.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO signals (video_id, kind, duration, payload, fetched_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT (video_id, kind) DO UPDATE SET
             duration = excluded.duration,
             payload = excluded.payload,
             fetched_at = excluded.fetched_at`,
		entry.VideoID, string(entry.Kind), entry.Duration, entry.Payload,
		fetchedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries older than maxAge and reports how many were removed.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, `DELETE FROM signals WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}
