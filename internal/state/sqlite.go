package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite-backed store.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
// Parent directories of a file path are created as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		source TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		output TEXT NOT NULL,
		run_id TEXT NOT NULL,
		converted_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the record for source.
func (s *SQLiteStore) Get(ctx context.Context, source string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT source, fingerprint, output, run_id, converted_at FROM documents WHERE source = ?",
		source,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("query document: %w", err)
	}
	return rec, true, nil
}

// Put inserts or replaces the record for rec.Source.
func (s *SQLiteStore) Put(ctx context.Context, rec Record) error {
	if rec.Source == "" {
		return errors.New("record source is empty")
	}
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (source, fingerprint, output, run_id, converted_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			output = excluded.output,
			run_id = excluded.run_id,
			converted_at = excluded.converted_at`,
		rec.Source, rec.Fingerprint, rec.Output, rec.RunID, rec.ConvertedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Delete removes the record for source.
func (s *SQLiteStore) Delete(ctx context.Context, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE source = ?", source); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// List returns all records ordered by source path.
func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT source, fingerprint, output, run_id, converted_at FROM documents ORDER BY source",
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var convertedAt int64
	if err := row.Scan(&rec.Source, &rec.Fingerprint, &rec.Output, &rec.RunID, &convertedAt); err != nil {
		return Record{}, err
	}
	rec.ConvertedAt = time.Unix(0, convertedAt)
	return rec, nil
}
