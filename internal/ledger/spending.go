package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// MonthlyTotal is one bucket of a monthly series. Month is the first instant
// of the month.
type MonthlyTotal struct {
	Month time.Time       `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// TotalSpent sums the subject's own split amounts over expenses dated in
// [start, end), whoever paid and whatever the group.
func TotalSpent(subject models.UserID, expenses []models.Expense, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		if amount, ok := share(subject, e); ok {
			total = total.Add(amount)
		}
	}
	return total
}

// AnnualTotal is TotalSpent over the calendar year in loc. A nil loc means UTC.
// The window ends at the close of the year, not at the current time, so
// expenses dated later in the year count and the total always equals the sum
// of MonthlySeries.
func AnnualTotal(subject models.UserID, expenses []models.Expense, year int, loc *time.Location) decimal.Decimal {
	start, end := yearBounds(year, loc)
	return TotalSpent(subject, expenses, start, end)
}

// MonthlySeries returns twelve buckets for the calendar year in loc, oldest
// first. Months without activity are present with a zero total.
func MonthlySeries(subject models.UserID, expenses []models.Expense, year int, loc *time.Location) []MonthlyTotal {
	start, end := yearBounds(year, loc)

	series := make([]MonthlyTotal, 12)
	for m := range series {
		series[m] = MonthlyTotal{
			Month: time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, start.Location()),
			Total: decimal.Zero,
		}
	}

	for _, e := range expenses {
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		amount, ok := share(subject, e)
		if !ok {
			continue
		}
		m := e.Date.In(start.Location()).Month() - 1
		series[m].Total = series[m].Total.Add(amount)
	}
	return series
}

// share is the subject's split amount on a well-formed expense.
func share(subject models.UserID, e models.Expense) (decimal.Decimal, bool) {
	if e.ValidateSplits() != nil {
		return decimal.Zero, false
	}
	s, ok := e.SplitFor(subject)
	if !ok {
		return decimal.Zero, false
	}
	return s.Amount, true
}

func yearBounds(year int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}
