// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of exported pages so repeated
// exports of a graph can be reviewed later.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/logseq-export/pkg/types"
)

const (
	// DefaultDir holds the ledger when no directory is configured.
	DefaultDir = ".logseq-export"
	dbFile     = "history.db"
)

// Entry is one recorded export.
type Entry struct {
	ID int64 `json:"id" yaml:"id"`
	types.ExportRecord
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the ledger at cfg.Dir/history.db and creates
// the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			output TEXT NOT NULL,
			assets TEXT,
			input_lines INTEGER,
			output_lines INTEGER,
			elided_lines INTEGER,
			no_br INTEGER,
			exported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_source ON exports(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one export and returns its ledger ID.
func (s *Store) Record(ctx context.Context, rec *types.ExportRecord) (int64, error) {
	assets, err := json.Marshal(rec.Assets)
	if err != nil {
		return 0, fmt.Errorf("encoding assets: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (source, output, assets, input_lines, output_lines, elided_lines, no_br, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Source, rec.Output, string(assets),
		rec.Lines.Input, rec.Lines.Output, rec.Lines.Elided,
		rec.NoBreakTags, rec.ExportedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("recording export of %s: %w", rec.Source, err)
	}
	return res.LastInsertId()
}

// Recent returns the latest exports, newest first. A limit of zero or
// less uses the store default. A non-empty source restricts the result
// to exports of that page.
func (s *Store) Recent(ctx context.Context, source string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT id, source, output, assets, input_lines, output_lines, elided_lines, no_br, exported_at
		FROM exports`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			assetsJSON sql.NullString
			exportedAt string
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.Output, &assetsJSON,
			&e.Lines.Input, &e.Lines.Output, &e.Lines.Elided,
			&e.NoBreakTags, &exportedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if assetsJSON.Valid {
			if err := json.Unmarshal([]byte(assetsJSON.String), &e.Assets); err != nil {
				return nil, fmt.Errorf("decoding assets of entry %d: %w", e.ID, err)
			}
		}
		e.ExportedAt, err = time.Parse(time.RFC3339Nano, exportedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing time of entry %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
