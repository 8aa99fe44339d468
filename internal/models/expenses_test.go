package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseValidateSplits(t *testing.T) {
	tests := []struct {
		name    string
		splits  []Split
		wantErr bool
		user    UserID
	}{
		{
			name: "valid",
			splits: []Split{
				{UserID: "a", Amount: decimal.NewFromInt(40), Paid: true},
				{UserID: "b", Amount: decimal.NewFromInt(60)},
			},
		},
		{name: "empty", splits: nil, wantErr: true},
		{
			name: "duplicate user",
			splits: []Split{
				{UserID: "b", Amount: decimal.NewFromInt(10)},
				{UserID: "b", Amount: decimal.NewFromInt(20)},
			},
			wantErr: true,
			user:    "b",
		},
		{
			name:    "negative amount",
			splits:  []Split{{UserID: "c", Amount: decimal.NewFromInt(-1)}},
			wantErr: true,
			user:    "c",
		},
		{
			name:    "missing user id",
			splits:  []Split{{Amount: decimal.NewFromInt(5)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Expense{ID: "e1", Splits: tt.splits}.ValidateSplits()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInconsistentSplit))

			var splitErr *SplitError
			require.True(t, errors.As(err, &splitErr))
			assert.Equal(t, ExpenseID("e1"), splitErr.ExpenseID)
			assert.Equal(t, tt.user, splitErr.UserID)
		})
	}
}

func TestExpenseInvolves(t *testing.T) {
	e := Expense{
		PaidByUserID: "a",
		Splits:       []Split{{UserID: "b", Amount: decimal.NewFromInt(1)}},
	}

	assert.True(t, e.Involves("a"))
	assert.True(t, e.Involves("b"))
	assert.False(t, e.Involves("c"))
	assert.True(t, e.IsOneToOne())
}
