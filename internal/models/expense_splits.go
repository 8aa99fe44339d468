package models

import "github.com/shopspring/decimal"

// Split is one participant's share of an expense. Paid means the share was
// settled outside the split itself and no longer counts as a debt.
type Split struct {
	UserID UserID          `json:"user_id,omitempty" db:"user_id,omitempty"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
	Paid   bool            `json:"paid" db:"paid"`
}
