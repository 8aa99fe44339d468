package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

const (
	alice models.UserID = "alice"
	bob   models.UserID = "bob"
	carol models.UserID = "carol"
)

var (
	d1 = time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	d2 = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	d3 = time.Date(2025, time.April, 2, 9, 30, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func split(id models.UserID, amount string, paid bool) models.Split {
	return models.Split{UserID: id, Amount: dec(amount), Paid: paid}
}

func expense(id string, payer models.UserID, date time.Time, splits ...models.Split) models.Expense {
	total := decimal.Zero
	for _, s := range splits {
		total = total.Add(s.Amount)
	}
	return models.Expense{
		ID:           models.ExpenseID(id),
		Description:  id,
		Amount:       total,
		Date:         date,
		PaidByUserID: payer,
		Splits:       splits,
	}
}

func inGroup(e models.Expense, g models.GroupID) models.Expense {
	e.GroupID = g
	return e
}

func settlement(id string, from, to models.UserID, amount string, date time.Time) models.Settlement {
	return models.Settlement{
		ID:               models.SettlementID(id),
		Amount:           dec(amount),
		Date:             date,
		PaidByUserID:     from,
		ReceivedByUserID: to,
	}
}

func testUsers() []models.User {
	return []models.User{
		{ID: alice, Name: "Alice", Email: "alice@example.com", ImageURL: "https://img.example.com/alice.png"},
		{ID: bob, Name: "Bob", Email: "bob@example.com"},
		{ID: carol, Name: "Carol", Email: "carol@example.com"},
	}
}

// scenario is an expense paid by alice with bob owing 60, then bob paying 20 back.
func scenario() ([]models.Expense, []models.Settlement) {
	expenses := []models.Expense{
		expense("e1", alice, d1, split(alice, "40", true), split(bob, "60", false)),
	}
	settlements := []models.Settlement{
		settlement("s1", bob, alice, "20", d2),
	}
	return expenses, settlements
}
