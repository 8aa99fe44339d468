package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/repositories"
	"splitledger/pkg/utils"
)

// MonthlyInsight is the spending data handed to the insight generator for
// one user.
type MonthlyInsight struct {
	UserID     models.UserID           `json:"user_id"`
	Name       string                  `json:"name,omitempty"`
	Email      string                  `json:"email,omitempty"`
	Since      time.Time               `json:"since"`
	Expenses   []ledger.ExpenseDetail  `json:"expenses"`
	TotalSpent decimal.Decimal         `json:"total_spent"`
	Categories []ledger.CategoryAmount `json:"categories"`
}

type InsightService struct {
	Store repositories.RecordStore
}

func NewInsightService(store repositories.RecordStore) *InsightService {
	return &InsightService{Store: store}
}

// ActiveUsers lists users who paid or share an expense dated at or after since.
func (s *InsightService) ActiveUsers(ctx context.Context, since time.Time) ([]models.User, error) {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to load users")
	}
	expenses, err := s.Store.ListExpenses(ctx, repositories.Filter{Since: since})
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to load expenses")
	}
	return ledger.ActiveUsers(users, expenses, since), nil
}

// MonthlyDetail collects the subject's expenses since the given date with a
// category breakdown and total.
func (s *InsightService) MonthlyDetail(ctx context.Context, subject models.UserID, since time.Time) (MonthlyInsight, error) {
	if err := requireSubject(subject); err != nil {
		return MonthlyInsight{}, err
	}

	expenses, err := s.Store.ListExpenses(ctx, repositories.Filter{Since: since})
	if err != nil {
		return MonthlyInsight{}, utils.ErrorHandler(err, "failed to load expenses")
	}
	return detail(subject, expenses, since), nil
}

// Feed builds an insight for every active user in one store pass. Users
// whose expenses are all malformed are left out.
func (s *InsightService) Feed(ctx context.Context, since time.Time) ([]MonthlyInsight, error) {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to load users")
	}
	expenses, err := s.Store.ListExpenses(ctx, repositories.Filter{Since: since})
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to load expenses")
	}
	logSkipped(logrus.Fields{"job": "insights"}, ledger.Malformed(expenses))

	feed := []MonthlyInsight{}
	for _, u := range ledger.ActiveUsers(users, expenses, since) {
		insight := detail(u.ID, expenses, since)
		if len(insight.Expenses) == 0 {
			continue
		}
		insight.Name = u.Name
		insight.Email = u.Email
		feed = append(feed, insight)
	}
	return feed, nil
}

func detail(subject models.UserID, expenses []models.Expense, since time.Time) MonthlyInsight {
	details := ledger.ExpenseDetails(subject, expenses, since)
	return MonthlyInsight{
		UserID:     subject,
		Since:      since,
		Expenses:   details,
		TotalSpent: ledger.DetailTotal(details),
		Categories: ledger.CategoryBreakdown(details),
	}
}
