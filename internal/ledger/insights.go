package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// Uncategorised labels expenses that carry no category.
const Uncategorised = "uncategorised"

// ExpenseDetail is one expense as it concerns a single user. Amount is the
// user's own share, zero when the user only paid.
type ExpenseDetail struct {
	ExpenseID   models.ExpenseID `json:"expense_id"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Date        time.Time        `json:"date"`
	Amount      decimal.Decimal  `json:"amount"`
	IsPayer     bool             `json:"is_payer"`
	IsGroup     bool             `json:"is_group"`
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseDetails lists every well-formed expense dated at or after since that
// the subject paid or shares, in input order.
func ExpenseDetails(subject models.UserID, expenses []models.Expense, since time.Time) []ExpenseDetail {
	out := []ExpenseDetail{}
	for _, e := range expenses {
		if e.Date.Before(since) || !e.Involves(subject) {
			continue
		}
		if e.ValidateSplits() != nil {
			continue
		}
		amount := decimal.Zero
		if s, ok := e.SplitFor(subject); ok {
			amount = s.Amount
		}
		out = append(out, ExpenseDetail{
			ExpenseID:   e.ID,
			Description: e.Description,
			Category:    e.Category,
			Date:        e.Date,
			Amount:      amount,
			IsPayer:     e.PaidByUserID == subject,
			IsGroup:     !e.IsOneToOne(),
		})
	}
	return out
}

// CategoryBreakdown groups details by category, largest amount first. Ties
// keep the order in which categories first appeared.
func CategoryBreakdown(details []ExpenseDetail) []CategoryAmount {
	index := make(map[string]int)
	out := []CategoryAmount{}
	for _, d := range details {
		cat := d.Category
		if cat == "" {
			cat = Uncategorised
		}
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, CategoryAmount{Category: cat, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(d.Amount)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

func DetailTotal(details []ExpenseDetail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Amount)
	}
	return total
}

// ActiveUsers returns the users who paid or share an expense dated at or
// after since, in the order of users.
func ActiveUsers(users []models.User, expenses []models.Expense, since time.Time) []models.User {
	active := make(map[models.UserID]struct{})
	for _, e := range expenses {
		if e.Date.Before(since) {
			continue
		}
		if e.PaidByUserID != "" {
			active[e.PaidByUserID] = struct{}{}
		}
		for _, s := range e.Splits {
			active[s.UserID] = struct{}{}
		}
	}

	out := []models.User{}
	for _, u := range users {
		if _, ok := active[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out
}
