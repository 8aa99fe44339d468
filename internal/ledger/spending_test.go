package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/models"
)

func spendingFixture() []models.Expense {
	return []models.Expense{
		expense("jan", alice, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), split(alice, "10", false), split(bob, "10", false)),
		inGroup(expense("mar", bob, d1, split(alice, "25.50", false), split(bob, "1", false)), "trip"),
		expense("dec", carol, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), split(alice, "4", true)),
		expense("payer-only", alice, d2, split(bob, "100", false)),
		expense("last-year", alice, time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC), split(alice, "7", false)),
		expense("next-year", alice, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), split(alice, "8", false)),
		expense("broken", alice, d1, split(alice, "50", false), split(alice, "50", false)),
	}
}

func TestTotalSpent(t *testing.T) {
	expenses := spendingFixture()

	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"first quarter", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "35.50"},
		{"end is exclusive", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), d1, "10"},
		{"start is inclusive", d1, d2, "25.50"},
		{"empty window", d2, d2, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalSpent(alice, expenses, tt.start, tt.end)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestAnnualTotal(t *testing.T) {
	got := AnnualTotal(alice, spendingFixture(), 2025, nil)
	assert.True(t, got.Equal(dec("39.50")), "got %s", got)
}

func TestAnnualTotalRunsToYearEnd(t *testing.T) {
	expenses := spendingFixture()
	jan1 := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	toDate := TotalSpent(alice, expenses, jan1, d2)
	annual := AnnualTotal(alice, expenses, 2025, time.UTC)

	assert.True(t, annual.Sub(toDate).Equal(dec("4")), "got %s", annual.Sub(toDate))
}

func TestMonthlySeriesSumsToAnnualTotal(t *testing.T) {
	expenses := spendingFixture()

	series := MonthlySeries(alice, expenses, 2025, time.UTC)
	require.Len(t, series, 12)

	sum := decimal.Zero
	for i, b := range series {
		assert.Equal(t, time.Date(2025, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), b.Month)
		sum = sum.Add(b.Total)
	}
	assert.True(t, sum.Equal(AnnualTotal(alice, expenses, 2025, time.UTC)))
	assert.True(t, series[0].Total.Equal(dec("10")))
	assert.True(t, series[2].Total.Equal(dec("25.50")))
	assert.True(t, series[11].Total.Equal(dec("4")))
	assert.True(t, series[5].Total.IsZero())
}

func TestMonthlySeriesWithoutExpenses(t *testing.T) {
	series := MonthlySeries(alice, nil, 2024, nil)

	require.Len(t, series, 12)
	for _, b := range series {
		assert.True(t, b.Total.IsZero())
	}
	assert.True(t, series[0].Month.Before(series[11].Month))
}

func TestMonthlySeriesUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// late on 31 January in UTC is already February two hours east
	expenses := []models.Expense{
		expense("edge", bob, time.Date(2025, time.January, 31, 23, 0, 0, 0, time.UTC), split(alice, "9", false)),
	}

	series := MonthlySeries(alice, expenses, 2025, loc)

	assert.True(t, series[0].Total.IsZero())
	assert.True(t, series[1].Total.Equal(dec("9")))
	assert.Equal(t, loc, series[1].Month.Location())
}
