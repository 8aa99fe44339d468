package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/models"
)

func TestSummarizeScenario(t *testing.T) {
	ctx := context.Background()
	expenses, settlements := scenario()
	dir := NewDirectory(testUsers(), nil)

	forAlice := Summarize(ctx, Build(alice, OneToOne(), expenses, settlements), dir)
	forBob := Summarize(ctx, Build(bob, OneToOne(), expenses, settlements), dir)

	assert.True(t, forAlice.TotalOwedToYou.Equal(dec("40")))
	assert.True(t, forAlice.TotalOwedByYou.IsZero())
	assert.True(t, forAlice.NetBalance.Equal(dec("40")))
	require.Len(t, forAlice.YouAreOwedBy, 1)
	assert.Equal(t, "Bob", forAlice.YouAreOwedBy[0].Name)
	assert.Empty(t, forAlice.YouOwe)

	assert.True(t, forBob.TotalOwedByYou.Equal(dec("40")))
	assert.True(t, forBob.NetBalance.Equal(dec("-40")))
	require.Len(t, forBob.YouOwe, 1)
	assert.Equal(t, "Alice", forBob.YouOwe[0].Name)
	assert.Equal(t, "https://img.example.com/alice.png", forBob.YouOwe[0].ImageURL)

	// closed two-user system nets to the same magnitude from both sides
	assert.True(t, forAlice.TotalOwedToYou.Equal(forBob.TotalOwedByYou))
	assert.True(t, forAlice.NetBalance.Neg().Equal(forBob.NetBalance))
}

func TestSummarizePaidSplitNotListed(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", alice, d1, split(alice, "40", true), split(bob, "60", true)),
	}
	dir := NewDirectory(testUsers(), nil)

	sum := Summarize(context.Background(), Build(alice, OneToOne(), expenses, nil), dir)

	assert.Empty(t, sum.YouAreOwedBy)
	assert.Empty(t, sum.YouOwe)
	assert.NotNil(t, sum.YouAreOwedBy)
	assert.NotNil(t, sum.YouOwe)
	assert.True(t, sum.NetBalance.IsZero())
}

func TestSummarizeOrdering(t *testing.T) {
	dave := models.UserID("dave")
	expenses := []models.Expense{
		expense("e1", alice, d1, split(bob, "10", false)),
		expense("e2", alice, d1, split(carol, "30", false)),
		expense("e3", alice, d1, split(dave, "10", false)),
		expense("e4", bob, d1, split(alice, "2", false)),
	}
	dir := NewDirectory(testUsers(), nil)

	sum := Summarize(context.Background(), Build(alice, OneToOne(), expenses, nil), dir)

	require.Len(t, sum.YouAreOwedBy, 3)
	assert.Equal(t, carol, sum.YouAreOwedBy[0].UserID)
	// bob nets to 8 after e4
	assert.Equal(t, dave, sum.YouAreOwedBy[1].UserID)
	assert.Equal(t, bob, sum.YouAreOwedBy[2].UserID)
	assert.Equal(t, UnknownUserName, sum.YouAreOwedBy[1].Name)
	assert.True(t, sum.TotalOwedToYou.Equal(dec("48")))
}

func TestSummarizeTiesKeepLedgerOrder(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", alice, d1, split(carol, "10", false)),
		expense("e2", alice, d1, split(bob, "10", false)),
	}
	dir := NewDirectory(testUsers(), nil)

	sum := Summarize(context.Background(), Build(alice, OneToOne(), expenses, nil), dir)

	require.Len(t, sum.YouAreOwedBy, 2)
	assert.Equal(t, carol, sum.YouAreOwedBy[0].UserID)
	assert.Equal(t, bob, sum.YouAreOwedBy[1].UserID)
}
