// Package store keeps a SQLite ledger of per-day spend so history survives
// log rotation. It is derived data: the scan engine never reads it back
// and nothing about scan correctness depends on it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rub1cc/barcc/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// History is a SQLite-backed per-day spend ledger.
type History struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the ledger database.
func (h *History) Close() error {
	return h.db.Close()
}

// RecordSnapshot upserts every day from the snapshot's breakdown. Days
// already in the ledger but absent from the snapshot (rotated logs) are
// left untouched.
func (h *History) RecordSnapshot(s *model.Snapshot) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range s.Days {
		_, err := tx.Exec(`INSERT OR REPLACE INTO days
			(day, input_tokens, output_tokens, cache_creation_tokens, cache_read_tokens,
			 cost, messages, sessions, models, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.Date.Format("2006-01-02"),
			d.Tokens.Input, d.Tokens.Output, d.Tokens.CacheCreation, d.Tokens.CacheRead,
			d.Cost, d.Messages, d.Sessions, strings.Join(d.Models, ","), now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Days returns up to limit recorded days, most recent first. limit <= 0
// returns all.
func (h *History) Days(limit int) ([]model.DayStat, error) {
	q := `SELECT day, input_tokens, output_tokens, cache_creation_tokens, cache_read_tokens,
	             cost, messages, sessions, models
	      FROM days ORDER BY day DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = h.db.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = h.db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var days []model.DayStat
	for rows.Next() {
		var day, models string
		var d model.DayStat
		if err := rows.Scan(&day, &d.Tokens.Input, &d.Tokens.Output,
			&d.Tokens.CacheCreation, &d.Tokens.CacheRead,
			&d.Cost, &d.Messages, &d.Sessions, &models); err != nil {
			return nil, err
		}
		d.Date, _ = time.ParseInLocation("2006-01-02", day, time.Local)
		if models != "" {
			d.Models = strings.Split(models, ",")
			sort.Strings(d.Models)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
