package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// Entry is the subject's net position toward one counterparty.
type Entry struct {
	Counterparty models.UserID   `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	// Since is the earliest date of an unpaid split the subject owes this
	// counterparty. When the debt comes only from settlements received, it is
	// the earliest of those instead. Zero when nothing ever increased the debt.
	// It does not depend on record order.
	Since time.Time `json:"since"`
}

// Ledger maps counterparties to signed net amounts for one subject.
// Entries keep the order in which counterparties first appeared.
type Ledger struct {
	Subject models.UserID
	Entries []Entry
	// Skipped holds the malformed expenses that were left out of the pass.
	Skipped []error
}

// Build nets every in-scope expense and settlement involving subject.
// Records outside scope are ignored even when passed in.
func Build(subject models.UserID, scope Scope, expenses []models.Expense, settlements []models.Settlement) Ledger {
	f := newFold(subject)

	for _, e := range expenses {
		if !scope.Includes(e.GroupID) {
			continue
		}
		f.addExpense(e)
	}

	for _, s := range settlements {
		if !scope.Includes(s.GroupID) || !s.Involves(subject) {
			continue
		}
		f.addSettlement(s)
	}

	return f.ledger()
}

// Get returns the entry for a counterparty. Counterparties that netted to
// zero have no entry.
func (l Ledger) Get(id models.UserID) (Entry, bool) {
	for _, e := range l.Entries {
		if e.Counterparty == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Amount returns the signed amount toward a counterparty, zero when absent.
func (l Ledger) Amount(id models.UserID) decimal.Decimal {
	e, ok := l.Get(id)
	if !ok {
		return decimal.Zero
	}
	return e.Amount
}

// Owed returns the entries the subject owes, in ledger order.
func (l Ledger) Owed() []Entry {
	var out []Entry
	for _, e := range l.Entries {
		if e.Amount.IsPositive() {
			out = append(out, e)
		}
	}
	return out
}

// Total is the signed sum of all entries.
func (l Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Entries {
		total = total.Add(e.Amount)
	}
	return total
}

type fold struct {
	subject models.UserID
	index   map[models.UserID]int
	entries []Entry
	skipped []error

	// earliest settlement received per counterparty
	received map[models.UserID]time.Time
}

func newFold(subject models.UserID) *fold {
	return &fold{
		subject:  subject,
		index:    make(map[models.UserID]int),
		received: make(map[models.UserID]time.Time),
	}
}

func (f *fold) entry(id models.UserID) *Entry {
	if i, ok := f.index[id]; ok {
		return &f.entries[i]
	}
	f.index[id] = len(f.entries)
	f.entries = append(f.entries, Entry{Counterparty: id, Amount: decimal.Zero})
	return &f.entries[len(f.entries)-1]
}

// accrue increases what the subject owes id and folds date into Since.
func (f *fold) accrue(id models.UserID, amount decimal.Decimal, date time.Time) {
	e := f.entry(id)
	e.Amount = e.Amount.Add(amount)
	e.Since = earliest(e.Since, date)
}

func earliest(current, date time.Time) time.Time {
	if current.IsZero() || date.Before(current) {
		return date
	}
	return current
}

// credit decreases what the subject owes id.
func (f *fold) credit(id models.UserID, amount decimal.Decimal) {
	e := f.entry(id)
	e.Amount = e.Amount.Sub(amount)
}

func (f *fold) addExpense(e models.Expense) {
	if !e.Involves(f.subject) {
		return
	}
	if err := e.ValidateSplits(); err != nil {
		f.skipped = append(f.skipped, err)
		return
	}
	if e.PaidByUserID == "" {
		f.skipped = append(f.skipped, &models.SplitError{ExpenseID: e.ID, Reason: "expense has no payer"})
		return
	}

	if e.PaidByUserID != f.subject {
		split, ok := e.SplitFor(f.subject)
		if !ok || split.Paid {
			return
		}
		f.accrue(e.PaidByUserID, split.Amount, e.Date)
		return
	}

	for _, s := range e.Splits {
		if s.UserID == f.subject || s.Paid {
			continue
		}
		f.credit(s.UserID, s.Amount)
	}
}

func (f *fold) addSettlement(s models.Settlement) {
	if s.PaidByUserID == s.ReceivedByUserID {
		return
	}
	if s.PaidByUserID == f.subject {
		f.credit(s.ReceivedByUserID, s.Amount)
		return
	}
	e := f.entry(s.PaidByUserID)
	e.Amount = e.Amount.Add(s.Amount)
	f.received[s.PaidByUserID] = earliest(f.received[s.PaidByUserID], s.Date)
}

func (f *fold) ledger() Ledger {
	entries := make([]Entry, 0, len(f.entries))
	for _, e := range f.entries {
		if e.Amount.IsZero() {
			continue
		}
		if e.Since.IsZero() {
			e.Since = f.received[e.Counterparty]
		}
		entries = append(entries, e)
	}
	return Ledger{
		Subject: f.subject,
		Entries: entries,
		Skipped: f.skipped,
	}
}

// Malformed returns a split error for every expense that breaks the
// one-split-per-participant invariant.
func Malformed(expenses []models.Expense) []error {
	var errs []error
	for _, e := range expenses {
		if err := e.ValidateSplits(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
