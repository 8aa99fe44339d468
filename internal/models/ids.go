package models

// Typed identifiers keep user, group and record ids from being mixed up in ledger maps.
type (
	UserID       string
	GroupID      string
	ExpenseID    string
	SettlementID string
)

func (id UserID) String() string  { return string(id) }
func (id GroupID) String() string { return string(id) }
