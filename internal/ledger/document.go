package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Snapshot is the whole ledger keyed by month.
type Snapshot map[MonthKey]MonthEntry

// Keys of the persisted document. The legacy Korean keys written by the
// first version of the dashboard are still accepted on read.
const (
	docRevenue    = "revenue"
	docExpense    = "expense"
	docRecordedAt = "recorded_at"

	legacyRevenue    = "매출"
	legacyExpense    = "매입"
	legacyRecordedAt = "입력일시"
)

// EncodeDocument writes the snapshot as an indented JSON document.
func EncodeDocument(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if snap == nil {
		snap = Snapshot{}
	}

	return enc.Encode(snap)
}

// DecodeDocument reads a persisted or uploaded document. Every month must be
// a canonical key holding both a revenue and an expense object; nothing else
// is checked.
func DecodeDocument(r io.Reader) (Snapshot, error) {
	var raw map[string]map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode document: %w", ErrInvalidArgument, err)
	}

	snap := make(Snapshot, len(raw))

	for k, fields := range raw {
		key, err := ParseMonthKey(k)
		if err != nil {
			return nil, err
		}

		entry, err := decodeEntry(fields)
		if err != nil {
			return nil, fmt.Errorf("month %s: %w", k, err)
		}

		snap[key] = entry
	}

	return snap, nil
}

func decodeEntry(fields map[string]json.RawMessage) (MonthEntry, error) {
	var entry MonthEntry

	rev, ok := pick(fields, docRevenue, legacyRevenue)
	if !ok {
		return entry, fmt.Errorf("%w: missing %q", ErrInvalidArgument, docRevenue)
	}

	exp, ok := pick(fields, docExpense, legacyExpense)
	if !ok {
		return entry, fmt.Errorf("%w: missing %q", ErrInvalidArgument, docExpense)
	}

	if err := json.Unmarshal(rev, &entry.Revenue); err != nil {
		return entry, fmt.Errorf("%w: revenue: %v", ErrInvalidArgument, err)
	}

	if err := json.Unmarshal(exp, &entry.Expense); err != nil {
		return entry, fmt.Errorf("%w: expense: %v", ErrInvalidArgument, err)
	}

	if entry.Revenue == nil {
		entry.Revenue = map[string]int64{}
	}

	if entry.Expense == nil {
		entry.Expense = map[string]int64{}
	}

	if ts, ok := pick(fields, docRecordedAt, legacyRecordedAt); ok {
		entry.RecordedAt = parseRecordedAt(ts)
	}

	return entry, nil
}

func pick(fields map[string]json.RawMessage, keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			return v, true
		}
	}

	return nil, false
}

// parseRecordedAt tolerates the offset-less ISO timestamps of the legacy
// document; an unreadable timestamp is dropped rather than failing the month.
func parseRecordedAt(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
