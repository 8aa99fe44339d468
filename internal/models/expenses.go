package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SplitError describes a malformed split list on a single expense.
type SplitError struct {
	ExpenseID ExpenseID
	UserID    UserID
	Reason    string
}

func (e *SplitError) Error() string {
	if e.UserID == "" {
		return fmt.Sprintf("expense %s: %s", e.ExpenseID, e.Reason)
	}
	return fmt.Sprintf("expense %s: user %s: %s", e.ExpenseID, e.UserID, e.Reason)
}

func (e *SplitError) Unwrap() error { return ErrInconsistentSplit }

// Expense is a shared cost paid by one user. An empty GroupID marks a
// 1-to-1 expense between the payer and the split participants.
type Expense struct {
	ID           ExpenseID       `json:"id,omitempty" db:"id,omitempty"`
	Description  string          `json:"description,omitempty" db:"description,omitempty"`
	Category     string          `json:"category,omitempty" db:"category,omitempty"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Date         time.Time       `json:"date" db:"date"`
	PaidByUserID UserID          `json:"paid_by_user_id,omitempty" db:"paid_by_user_id,omitempty"`
	GroupID      GroupID         `json:"group_id,omitempty" db:"group_id,omitempty"`
	Splits       []Split         `json:"splits,omitempty"`
}

func (e Expense) IsOneToOne() bool {
	return e.GroupID == ""
}

// SplitFor returns the split entry for the user, if any.
func (e Expense) SplitFor(id UserID) (Split, bool) {
	for _, s := range e.Splits {
		if s.UserID == id {
			return s, true
		}
	}
	return Split{}, false
}

// Involves reports whether the user paid the expense or holds a split in it.
func (e Expense) Involves(id UserID) bool {
	if e.PaidByUserID == id {
		return true
	}
	_, ok := e.SplitFor(id)
	return ok
}

// ValidateSplits checks the one-split-per-participant invariant.
func (e Expense) ValidateSplits() error {
	if len(e.Splits) == 0 {
		return &SplitError{ExpenseID: e.ID, Reason: "no split entries"}
	}
	seen := make(map[UserID]struct{}, len(e.Splits))
	for _, s := range e.Splits {
		if s.UserID == "" {
			return &SplitError{ExpenseID: e.ID, Reason: "split without user id"}
		}
		if _, dup := seen[s.UserID]; dup {
			return &SplitError{ExpenseID: e.ID, UserID: s.UserID, Reason: "duplicate split entry"}
		}
		seen[s.UserID] = struct{}{}
		if s.Amount.IsNegative() {
			return &SplitError{ExpenseID: e.ID, UserID: s.UserID, Reason: "negative split amount"}
		}
	}
	return nil
}
