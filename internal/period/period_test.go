package period_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/period"
)

func TestPeriods(t *testing.T) {
	type testCase struct {
		name      string
		build     func() (period.Period, error)
		wantFirst ledger.MonthKey
		wantLast  ledger.MonthKey
		wantLen   int
		wantLabel string
	}

	tests := []testCase{
		{
			name:      "Month",
			build:     func() (period.Period, error) { return period.Month(2025, 3) },
			wantFirst: "2025-03",
			wantLast:  "2025-03",
			wantLen:   1,
			wantLabel: "2025년 3월",
		},
		{
			name:      "FirstHalf",
			build:     func() (period.Period, error) { return period.OfHalf(2025, period.H1) },
			wantFirst: "2025-01",
			wantLast:  "2025-06",
			wantLen:   6,
			wantLabel: "2025년 상반기",
		},
		{
			name:      "SecondHalf",
			build:     func() (period.Period, error) { return period.OfHalf(2025, period.H2) },
			wantFirst: "2025-07",
			wantLast:  "2025-12",
			wantLen:   6,
			wantLabel: "2025년 하반기",
		},
		{
			name:      "Year",
			build:     func() (period.Period, error) { return period.Year(2024) },
			wantFirst: "2024-01",
			wantLast:  "2024-12",
			wantLen:   12,
			wantLabel: "2024년",
		},
		{
			name:      "MultiYearRange",
			build:     func() (period.Period, error) { return period.Range("2023-11", "2025-02") },
			wantFirst: "2023-11",
			wantLast:  "2025-02",
			wantLen:   16,
			wantLabel: "2023-11 ~ 2025-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.build()
			require.NoError(t, err)

			keys := p.Keys()
			require.Len(t, keys, tt.wantLen)
			assert.Equal(t, tt.wantFirst, keys[0])
			assert.Equal(t, tt.wantLast, keys[len(keys)-1])
			assert.Equal(t, tt.wantLabel, p.Label())
		})
	}
}

func TestPeriods_Invalid(t *testing.T) {
	_, err := period.Month(2025, 13)
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = period.OfHalf(2025, period.Half(3))
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = period.Range("2025-02", "2024-12")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = period.Range("2025-2", "2025-12")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = period.ParseHalf("h3")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestSelect(t *testing.T) {
	snap := ledger.Snapshot{
		"2024-02": {},
		"2024-04": {},
		"2024-07": {},
	}

	got := period.Select(snap, []ledger.MonthKey{"2024-02", "2024-03", "2024-04"})
	assert.Len(t, got, 2)
	assert.NotContains(t, got, ledger.MonthKey("2024-03"))

	h2, err := period.OfHalf(2024, period.H2)
	require.NoError(t, err)
	assert.Len(t, h2.Select(snap), 1)
}

func TestPeriod_Contains(t *testing.T) {
	type testCase struct {
		name string
		key  ledger.MonthKey
		want bool
	}

	p, err := period.Range("2024-11", "2025-02")
	require.NoError(t, err)

	tests := []testCase{
		{name: "Start", key: "2024-11", want: true},
		{name: "AcrossYear", key: "2025-01", want: true},
		{name: "End", key: "2025-02", want: true},
		{name: "Before", key: "2024-10", want: false},
		{name: "After", key: "2025-03", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Contains(tt.key))
		})
	}

	got := p.Select(ledger.Snapshot{"2024-10": {}, "2024-12": {}, "2025-02": {}, "2025-03": {}})
	assert.Equal(t, []ledger.MonthKey{"2024-12", "2025-02"}, ledger.SortedKeys(got))
}
