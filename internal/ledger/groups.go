package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// MemberBalance is the subject's signed position toward one group member.
// Positive means the subject owes the member.
type MemberBalance struct {
	UserID   models.UserID   `json:"user_id"`
	Name     string          `json:"name"`
	ImageURL string          `json:"image_url,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// GroupBalance is one group's sheet as seen by the subject. Balance is
// positive when the subject is owed money inside the group.
type GroupBalance struct {
	GroupID models.GroupID  `json:"group_id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Members []MemberBalance `json:"members"`
	Skipped []error         `json:"-"`
}

// GroupSheet nets the subject against every other member of group using
// only records carrying that group's id. Members the subject is square with
// are listed with a zero amount. Counterparties that left the group but
// still hold a balance follow the current members.
func GroupSheet(ctx context.Context, subject models.UserID, group models.Group, expenses []models.Expense, settlements []models.Settlement, dir *Directory) GroupBalance {
	l := Build(subject, InGroup(group.ID), expenses, settlements)

	gb := GroupBalance{
		GroupID: group.ID,
		Name:    group.Name,
		Balance: l.Total().Neg(),
		Members: []MemberBalance{},
		Skipped: l.Skipped,
	}

	listed := make(map[models.UserID]struct{}, len(group.Members))
	for _, m := range group.Members {
		if m.UserID == subject {
			continue
		}
		if _, dup := listed[m.UserID]; dup {
			continue
		}
		listed[m.UserID] = struct{}{}
		gb.Members = append(gb.Members, memberBalance(ctx, dir, m.UserID, l.Amount(m.UserID)))
	}

	for _, e := range l.Entries {
		if _, ok := listed[e.Counterparty]; ok {
			continue
		}
		gb.Members = append(gb.Members, memberBalance(ctx, dir, e.Counterparty, e.Amount))
	}

	return gb
}

func memberBalance(ctx context.Context, dir *Directory, id models.UserID, amount decimal.Decimal) MemberBalance {
	u := dir.Resolve(ctx, id)
	return MemberBalance{
		UserID:   id,
		Name:     u.Name,
		ImageURL: u.ImageURL,
		Amount:   amount,
	}
}

// UserGroups returns a sheet for every group the subject belongs to, in the
// order the groups were given.
func UserGroups(ctx context.Context, subject models.UserID, groups []models.Group, expenses []models.Expense, settlements []models.Settlement, dir *Directory) []GroupBalance {
	out := []GroupBalance{}
	for _, g := range groups {
		if !g.HasMember(subject) {
			continue
		}
		out = append(out, GroupSheet(ctx, subject, g, expenses, settlements, dir))
	}
	return out
}

// PairBalance is the signed amount a owes b within scope.
func PairBalance(a, b models.UserID, scope Scope, expenses []models.Expense, settlements []models.Settlement) decimal.Decimal {
	return Build(a, scope, expenses, settlements).Amount(b)
}
