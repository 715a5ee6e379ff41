package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

// Store keeps one row per month. The queries use $n placeholders and
// ON CONFLICT, which both Postgres and SQLite accept.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry expects month_key, revenue, expense, recorded_at.
func scanEntry(s scanner) (ledger.MonthKey, ledger.MonthEntry, error) {
	var (
		key        string
		revenue    string
		expense    string
		recordedAt sql.NullString
		entry      ledger.MonthEntry
	)

	if err := s.Scan(&key, &revenue, &expense, &recordedAt); err != nil {
		return "", entry, err
	}

	if err := json.Unmarshal([]byte(revenue), &entry.Revenue); err != nil {
		return "", entry, fmt.Errorf("decode revenue of %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(expense), &entry.Expense); err != nil {
		return "", entry, fmt.Errorf("decode expense of %s: %w", key, err)
	}

	if entry.Revenue == nil {
		entry.Revenue = map[string]int64{}
	}

	if entry.Expense == nil {
		entry.Expense = map[string]int64{}
	}

	if recordedAt.Valid {
		if t, err := time.Parse(time.RFC3339Nano, recordedAt.String); err == nil {
			entry.RecordedAt = t
		}
	}

	return ledger.MonthKey(key), entry, nil
}

func (s *Store) Get(ctx context.Context, key ledger.MonthKey) (ledger.MonthEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT month_key, revenue, expense, recorded_at FROM month_entries WHERE month_key = $1`,
		string(key))

	_, entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.MonthEntry{}, fmt.Errorf("%w: %s", ledger.ErrNotFound, key)
	}

	if err != nil {
		return ledger.MonthEntry{}, ledger.WrapStorage("get", err)
	}

	return entry, nil
}

func (s *Store) GetAll(ctx context.Context) (ledger.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT month_key, revenue, expense, recorded_at FROM month_entries ORDER BY month_key`)
	if err != nil {
		return nil, ledger.WrapStorage("get all", err)
	}
	defer rows.Close()

	snap := make(ledger.Snapshot)

	for rows.Next() {
		key, entry, err := scanEntry(rows)
		if err != nil {
			return nil, ledger.WrapStorage("get all", err)
		}

		snap[key] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, ledger.WrapStorage("get all", err)
	}

	return snap, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, ex execer, key ledger.MonthKey, entry ledger.MonthEntry) error {
	revenue, err := json.Marshal(nonNil(entry.Revenue))
	if err != nil {
		return fmt.Errorf("encode revenue: %w", err)
	}

	expense, err := json.Marshal(nonNil(entry.Expense))
	if err != nil {
		return fmt.Errorf("encode expense: %w", err)
	}

	var recordedAt sql.NullString
	if !entry.RecordedAt.IsZero() {
		recordedAt = sql.NullString{String: entry.RecordedAt.Format(time.RFC3339Nano), Valid: true}
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO month_entries (month_key, revenue, expense, recorded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (month_key) DO UPDATE SET
			revenue = excluded.revenue,
			expense = excluded.expense,
			recorded_at = excluded.recorded_at`,
		string(key), string(revenue), string(expense), recordedAt)

	return err
}

func (s *Store) Put(ctx context.Context, key ledger.MonthKey, entry ledger.MonthEntry) error {
	if err := upsert(ctx, s.db, key, entry); err != nil {
		return ledger.WrapStorage("put", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key ledger.MonthKey) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM month_entries WHERE month_key = $1`, string(key))
	if err != nil {
		return ledger.WrapStorage("delete", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return ledger.WrapStorage("delete", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrNotFound, key)
	}

	return nil
}

// ReplaceAll swaps the table contents in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, snap ledger.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ledger.WrapStorage("replace", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM month_entries`); err != nil {
		return ledger.WrapStorage("replace", err)
	}

	for _, key := range ledger.SortedKeys(snap) {
		if err := upsert(ctx, tx, key, snap[key]); err != nil {
			return ledger.WrapStorage("replace", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ledger.WrapStorage("replace", err)
	}

	return nil
}

func nonNil(m map[string]int64) map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}

	return m
}
