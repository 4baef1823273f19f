package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"typeset-cli/internal/model"
)

// InsertionRecord is one typeset layer insertion. The history listing reads
// it back; BatchSize groups rows that landed in one multi-bubble insert.
type InsertionRecord struct {
	ID        string
	TS        time.Time
	LineIndex int
	Text      string
	StyleID   string
	StyleName string
	BatchSize int
}

func (s *Store) openHistory(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", filepath.Join(s.Dir, "history.sqlite"))
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when a second process has the history open.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS insertions (
		id TEXT PRIMARY KEY,
		ts_unixms INTEGER NOT NULL,
		line_index INTEGER NOT NULL,
		text TEXT NOT NULL,
		style_id TEXT NOT NULL,
		style_name TEXT NOT NULL,
		batch_size INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_insertions_ts ON insertions(ts_unixms);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// AppendInsertions logs records in one transaction. Missing ids and
// timestamps are filled in.
func (s *Store) AppendInsertions(ctx context.Context, recs []InsertionRecord) error {
	if len(recs) == 0 {
		return nil
	}
	db, err := s.openHistory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range recs {
		if r.ID == "" {
			r.ID = model.NewID()
		}
		if r.TS.IsZero() {
			r.TS = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO insertions(id, ts_unixms, line_index, text, style_id, style_name, batch_size)
			VALUES(?, ?, ?, ?, ?, ?, ?)
		`, r.ID, r.TS.UnixMilli(), r.LineIndex, r.Text, r.StyleID, r.StyleName, r.BatchSize); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentInsertions returns the newest records first, up to limit (0 = all).
func (s *Store) RecentInsertions(ctx context.Context, limit int) ([]InsertionRecord, error) {
	db, err := s.openHistory(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, ts_unixms, line_index, text, style_id, style_name, batch_size
	      FROM insertions
	      ORDER BY ts_unixms DESC, id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []InsertionRecord{}
	for rows.Next() {
		var r InsertionRecord
		var tsMs int64
		if err := rows.Scan(&r.ID, &tsMs, &r.LineIndex, &r.Text, &r.StyleID, &r.StyleName, &r.BatchSize); err != nil {
			return nil, err
		}
		r.TS = time.UnixMilli(tsMs).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClearHistory drops every logged insertion.
func (s *Store) ClearHistory(ctx context.Context) error {
	db, err := s.openHistory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM insertions`)
	return err
}
