package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

func TestCategoriesModel_Apply(t *testing.T) {
	type testCase struct {
		name    string
		in      categoryInput
		wantErr error
		check   func(t *testing.T, snap category.Snapshot)
	}

	tests := []testCase{
		{
			name: "AddRevenue",
			in:   categoryInput{action: actionAdd, target: targetZeroRated, name: " Z "},
			check: func(t *testing.T, snap category.Snapshot) {
				assert.Equal(t, []string{"Z"}, snap.ZeroRated)
			},
		},
		{
			name: "RenameExpense",
			in:   categoryInput{action: actionRename, target: targetExpense, name: "Rent", newName: "Lease"},
			check: func(t *testing.T, snap category.Snapshot) {
				assert.Equal(t, []string{"Lease"}, snap.Expense)
			},
		},
		{
			name: "RemoveRevenue",
			in:   categoryInput{action: actionRemove, target: targetTaxInvoiced, name: "A"},
			check: func(t *testing.T, snap category.Snapshot) {
				assert.Empty(t, snap.TaxInvoiced)
			},
		},
		{
			name:    "Duplicate",
			in:      categoryInput{action: actionAdd, target: targetTaxInvoiced, name: "A"},
			wantErr: category.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := category.NewRegistry([]string{"A"}, nil, []string{"Rent"})
			m := NewCategoriesModel(registry, nil)

			msg, ok := m.apply(tt.in)().(categoryDoneMsg)
			require.True(t, ok)

			if tt.wantErr != nil {
				assert.ErrorIs(t, msg.err, tt.wantErr)
				return
			}

			require.NoError(t, msg.err)
			tt.check(t, registry.Snapshot())
		})
	}
}

func TestCategoriesModel_ApplyRekey(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	store.EXPECT().GetAll(gomock.Any()).Return(ledger.Snapshot{
		"2025-01": {Expense: map[string]int64{"Rent": 7}},
	}, nil)
	store.EXPECT().Put(gomock.Any(), ledger.MonthKey("2025-01"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ ledger.MonthKey, e ledger.MonthEntry) error {
			assert.Equal(t, map[string]int64{"Lease": 7}, e.Expense)
			return nil
		})

	m := NewCategoriesModel(category.NewRegistry(nil, nil, []string{"Rent"}), ledger.NewService(store))

	msg, ok := m.apply(categoryInput{action: actionRekey, target: targetExpense, name: "Rent", newName: "Lease"})().(categoryDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Contains(t, msg.status, "1 month(s)")
}
