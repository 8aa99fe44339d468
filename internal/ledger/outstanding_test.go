package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/models"
)

func TestExtractScenario(t *testing.T) {
	expenses, settlements := scenario()
	snap := Snapshot{Users: testUsers(), Expenses: expenses, Settlements: settlements}

	res := Extractor{}.Extract(context.Background(), snap)

	assert.Empty(t, res.Failures)
	require.Len(t, res.Debtors, 1)
	report := res.Debtors[0]
	assert.Equal(t, bob, report.UserID)
	assert.Equal(t, "bob@example.com", report.Email)
	require.Len(t, report.Debts, 1)
	assert.Equal(t, alice, report.Debts[0].Counterparty)
	assert.Equal(t, "Alice", report.Debts[0].Name)
	assert.True(t, report.Debts[0].Amount.Equal(dec("40")))
	assert.Equal(t, d1, report.Debts[0].Since)
}

func TestExtractPaidSplitProducesNoDebtor(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", alice, d1, split(alice, "40", true), split(bob, "60", true)),
	}

	res := Extractor{}.Extract(context.Background(), Snapshot{Users: testUsers(), Expenses: expenses})

	assert.Empty(t, res.Debtors)
	assert.NotNil(t, res.Debtors)
}

func TestExtractIgnoresGroupRecords(t *testing.T) {
	expenses := []models.Expense{
		inGroup(expense("trip", alice, d1, split(bob, "60", false)), "trip"),
	}

	res := Extractor{}.Extract(context.Background(), Snapshot{Users: testUsers(), Expenses: expenses})

	assert.Empty(t, res.Debtors)
}

func TestExtractIsIdempotent(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", alice, d1, split(bob, "10", false), split(carol, "20", false)),
		expense("e2", bob, d2, split(carol, "5", false), split(alice, "1", false)),
		expense("e3", carol, d3, split(alice, "3", false)),
	}
	snap := Snapshot{Users: testUsers(), Expenses: expenses}

	x := Extractor{Workers: 3}
	first := x.Extract(context.Background(), snap)
	second := x.Extract(context.Background(), snap)

	assert.Equal(t, first, second)
	// alice is owed by both others and never shows up
	require.Len(t, first.Debtors, 2)
	assert.Equal(t, bob, first.Debtors[0].UserID)
	assert.Equal(t, carol, first.Debtors[1].UserID)
	require.Len(t, first.Debtors[1].Debts, 2)
	assert.True(t, first.Debtors[1].Debts[0].Amount.Equal(dec("17")))
	assert.True(t, first.Debtors[1].Debts[1].Amount.Equal(dec("5")))
}

func TestExtractUnknownCounterparty(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", "ghost", d1, split(bob, "10", false)),
	}

	res := Extractor{}.Extract(context.Background(), Snapshot{Users: testUsers(), Expenses: expenses})

	require.Len(t, res.Debtors, 1)
	assert.Equal(t, UnknownUserName, res.Debtors[0].Debts[0].Name)
	assert.Empty(t, res.Failures)
}

func TestExtractUsesFallbackOncePerUser(t *testing.T) {
	var calls atomic.Int32
	fallback := UserGetterFunc(func(ctx context.Context, id models.UserID) (models.User, error) {
		calls.Add(1)
		return models.User{ID: id, Name: "Dave"}, nil
	})

	users := testUsers()
	var expenses []models.Expense
	for i, u := range users {
		expenses = append(expenses, expense(fmt.Sprintf("e%d", i), "dave", d1, split(u.ID, "5", false)))
	}

	res := Extractor{Workers: 2, Fallback: fallback}.Extract(context.Background(), Snapshot{Users: users, Expenses: expenses})

	require.Len(t, res.Debtors, 3)
	for _, d := range res.Debtors {
		assert.Equal(t, "Dave", d.Debts[0].Name)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestExtractIsolatesFailures(t *testing.T) {
	boom := errors.New("store offline")
	fallback := UserGetterFunc(func(ctx context.Context, id models.UserID) (models.User, error) {
		if id == "flaky" {
			return models.User{}, boom
		}
		return models.User{}, fmt.Errorf("lookup %s: %w", id, ErrRecordNotFound)
	})

	expenses := []models.Expense{
		expense("e1", "flaky", d1, split(bob, "10", false)),
		expense("e2", alice, d1, split(carol, "7", false)),
		expense("e3", alice, d2, split(carol, "1", false), split(carol, "1", false)),
	}
	users := append(testUsers(), models.User{Name: "no id"})

	res := Extractor{Fallback: fallback}.Extract(context.Background(), Snapshot{Users: users, Expenses: expenses})

	require.Len(t, res.Debtors, 1)
	assert.Equal(t, carol, res.Debtors[0].UserID)
	assert.True(t, res.Debtors[0].Debts[0].Amount.Equal(dec("7")))

	require.Len(t, res.Failures, 2)
	assert.Equal(t, bob, res.Failures[0].UserID)
	assert.ErrorIs(t, res.Failures[0], boom)
	assert.Equal(t, models.UserID(""), res.Failures[1].UserID)

	require.Len(t, res.Malformed, 1)
	assert.ErrorIs(t, res.Malformed[0], ErrInconsistentSplit)
}

func TestExtractCancelledContext(t *testing.T) {
	expenses, settlements := scenario()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Extractor{}.Extract(ctx, Snapshot{Users: testUsers(), Expenses: expenses, Settlements: settlements})

	assert.Empty(t, res.Debtors)
	require.Len(t, res.Failures, 3)
	assert.ErrorIs(t, res.Failures[0], context.Canceled)
}
