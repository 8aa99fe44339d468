package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"splitledger/internal/models"
)

// DefaultWorkers bounds the extractor fan-out when Workers is not set.
const DefaultWorkers = 4

// Debt is one amount a user owes, with the date it started accruing.
type Debt struct {
	Counterparty models.UserID   `json:"user_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Since        time.Time       `json:"since"`
}

// DebtorReport lists everything one user owes in 1-to-1 scope.
type DebtorReport struct {
	UserID models.UserID `json:"user_id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Debts  []Debt        `json:"debts"`
}

// UserFailure records a user the extractor could not process.
type UserFailure struct {
	UserID models.UserID
	Err    error
}

func (f UserFailure) Error() string {
	return fmt.Sprintf("user %s: %v", f.UserID, f.Err)
}

func (f UserFailure) Unwrap() error { return f.Err }

type ExtractResult struct {
	Debtors  []DebtorReport
	Failures []UserFailure
	// Malformed holds one error per 1-to-1 expense that was left out.
	Malformed []error
}

// Snapshot is the full set of records an extraction runs over.
type Snapshot struct {
	Users       []models.User
	Expenses    []models.Expense
	Settlements []models.Settlement
}

// Extractor finds every user who owes money outside of groups.
type Extractor struct {
	// Workers bounds how many users are netted at once. Zero means DefaultWorkers.
	Workers int
	// Fallback resolves counterparties missing from the snapshot. Optional.
	Fallback UserGetter
}

type extractOutcome struct {
	report *DebtorReport
	err    error
}

// Extract nets each snapshot user in 1-to-1 scope and keeps those with at
// least one positive entry. A user that fails is reported in Failures and
// does not stop the others. Debtors and Failures follow snapshot user order.
func (x Extractor) Extract(ctx context.Context, snap Snapshot) ExtractResult {
	workers := x.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	dir := NewDirectory(snap.Users, x.Fallback)

	expenses := make([]models.Expense, 0, len(snap.Expenses))
	for _, e := range snap.Expenses {
		if e.IsOneToOne() {
			expenses = append(expenses, e)
		}
	}
	settlements := make([]models.Settlement, 0, len(snap.Settlements))
	for _, s := range snap.Settlements {
		if s.GroupID == "" {
			settlements = append(settlements, s)
		}
	}

	outcomes := make([]extractOutcome, len(snap.Users))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, u := range snap.Users {
		g.Go(func() error {
			outcomes[i] = x.extractOne(ctx, dir, u, expenses, settlements)
			return nil
		})
	}
	_ = g.Wait()

	res := ExtractResult{
		Debtors:   []DebtorReport{},
		Malformed: Malformed(expenses),
	}
	for i, o := range outcomes {
		if o.err != nil {
			res.Failures = append(res.Failures, UserFailure{UserID: snap.Users[i].ID, Err: o.err})
			continue
		}
		if o.report != nil {
			res.Debtors = append(res.Debtors, *o.report)
		}
	}
	return res
}

func (x Extractor) extractOne(ctx context.Context, dir *Directory, u models.User, expenses []models.Expense, settlements []models.Settlement) (out extractOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = extractOutcome{err: fmt.Errorf("panic while netting: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return extractOutcome{err: err}
	}
	if u.ID == "" {
		return extractOutcome{err: errors.New("user has no id")}
	}

	owed := Build(u.ID, OneToOne(), expenses, settlements).Owed()
	if len(owed) == 0 {
		return extractOutcome{}
	}

	report := DebtorReport{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Debts:  make([]Debt, 0, len(owed)),
	}
	for _, e := range owed {
		name := UnknownUserName
		cp, err := dir.Lookup(ctx, e.Counterparty)
		switch {
		case err == nil:
			name = cp.Name
		case !errors.Is(err, ErrRecordNotFound):
			return extractOutcome{err: err}
		}
		report.Debts = append(report.Debts, Debt{
			Counterparty: e.Counterparty,
			Name:         name,
			Amount:       e.Amount,
			Since:        e.Since,
		})
	}
	return extractOutcome{report: &report}
}
