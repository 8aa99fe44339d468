package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is a direct payment from PaidByUserID to ReceivedByUserID.
type Settlement struct {
	ID               SettlementID    `json:"id,omitempty" db:"id,omitempty"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	Note             string          `json:"note,omitempty" db:"note,omitempty"`
	Date             time.Time       `json:"date" db:"date"`
	PaidByUserID     UserID          `json:"paid_by_user_id,omitempty" db:"paid_by_user_id,omitempty"`
	ReceivedByUserID UserID          `json:"received_by_user_id,omitempty" db:"received_by_user_id,omitempty"`
	GroupID          GroupID         `json:"group_id,omitempty" db:"group_id,omitempty"`
}

// Involves reports whether the user is either side of the settlement.
func (s Settlement) Involves(id UserID) bool {
	return s.PaidByUserID == id || s.ReceivedByUserID == id
}
