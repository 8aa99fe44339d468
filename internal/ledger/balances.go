package ledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// Counterparty is one line of a balance list. Amount is always absolute.
type Counterparty struct {
	UserID   models.UserID   `json:"user_id"`
	Name     string          `json:"name"`
	ImageURL string          `json:"image_url,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

type BalanceSummary struct {
	TotalOwedByYou decimal.Decimal `json:"total_owed_by_you"`
	TotalOwedToYou decimal.Decimal `json:"total_owed_to_you"`
	NetBalance     decimal.Decimal `json:"net_balance"`
	YouOwe         []Counterparty  `json:"you_owe"`
	YouAreOwedBy   []Counterparty  `json:"you_are_owed_by"`
}

// Summarize splits a ledger into what the subject owes and what it is owed.
// Both lists are sorted by amount, largest first, keeping ledger order for
// equal amounts. Counterparties are resolved through dir.
func Summarize(ctx context.Context, l Ledger, dir *Directory) BalanceSummary {
	sum := BalanceSummary{
		TotalOwedByYou: decimal.Zero,
		TotalOwedToYou: decimal.Zero,
		YouOwe:         []Counterparty{},
		YouAreOwedBy:   []Counterparty{},
	}

	for _, e := range l.Entries {
		u := dir.Resolve(ctx, e.Counterparty)
		c := Counterparty{
			UserID:   e.Counterparty,
			Name:     u.Name,
			ImageURL: u.ImageURL,
			Amount:   e.Amount.Abs(),
		}
		switch {
		case e.Amount.IsPositive():
			sum.TotalOwedByYou = sum.TotalOwedByYou.Add(c.Amount)
			sum.YouOwe = append(sum.YouOwe, c)
		case e.Amount.IsNegative():
			sum.TotalOwedToYou = sum.TotalOwedToYou.Add(c.Amount)
			sum.YouAreOwedBy = append(sum.YouAreOwedBy, c)
		}
	}

	sortByAmountDesc(sum.YouOwe)
	sortByAmountDesc(sum.YouAreOwedBy)
	sum.NetBalance = sum.TotalOwedToYou.Sub(sum.TotalOwedByYou)
	return sum
}

func sortByAmountDesc(list []Counterparty) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Amount.GreaterThan(list[j].Amount)
	})
}
