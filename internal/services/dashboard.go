package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/repositories"
	"splitledger/pkg/utils"
)

// DashboardService answers the per-user dashboard queries. Each call reads a
// fresh snapshot from the store and computes on it.
type DashboardService struct {
	Store    repositories.RecordStore
	Location *time.Location
	Now      func() time.Time
}

func NewDashboardService(store repositories.RecordStore, loc *time.Location) *DashboardService {
	return &DashboardService{Store: store, Location: loc, Now: time.Now}
}

// Pair is the subject's 1-to-1 position toward another user. Amount is
// positive when the subject owes.
type Pair struct {
	User   models.User     `json:"user"`
	Amount decimal.Decimal `json:"amount"`
}

func (s *DashboardService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DashboardService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// Balances nets every 1-to-1 expense and settlement of subject.
func (s *DashboardService) Balances(ctx context.Context, subject models.UserID) (ledger.BalanceSummary, error) {
	if err := requireSubject(subject); err != nil {
		return ledger.BalanceSummary{}, err
	}

	expenses, settlements, err := s.load(ctx, repositories.OneToOne())
	if err != nil {
		return ledger.BalanceSummary{}, err
	}
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return ledger.BalanceSummary{}, utils.ErrorHandler(err, "failed to load users")
	}

	l := ledger.Build(subject, ledger.OneToOne(), expenses, settlements)
	logSkipped(logrus.Fields{"user_id": subject, "view": "balances"}, l.Skipped)

	return ledger.Summarize(ctx, l, ledger.NewDirectory(users, s.Store)), nil
}

// TotalSpent is the subject's own share over the current calendar year.
func (s *DashboardService) TotalSpent(ctx context.Context, subject models.UserID) (decimal.Decimal, error) {
	if err := requireSubject(subject); err != nil {
		return decimal.Zero, err
	}

	year := s.now().In(s.location()).Year()
	expenses, err := s.yearExpenses(ctx, year)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.AnnualTotal(subject, expenses, year, s.location()), nil
}

// MonthlySpending returns twelve monthly buckets for the current year.
func (s *DashboardService) MonthlySpending(ctx context.Context, subject models.UserID) ([]ledger.MonthlyTotal, error) {
	if err := requireSubject(subject); err != nil {
		return nil, err
	}

	year := s.now().In(s.location()).Year()
	expenses, err := s.yearExpenses(ctx, year)
	if err != nil {
		return nil, err
	}
	return ledger.MonthlySeries(subject, expenses, year, s.location()), nil
}

// Groups lists every group of subject with the subject's balance in it.
func (s *DashboardService) Groups(ctx context.Context, subject models.UserID) ([]ledger.GroupBalance, error) {
	if err := requireSubject(subject); err != nil {
		return nil, err
	}

	groups, err := s.Store.ListGroups(ctx)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to load groups")
	}
	expenses, settlements, err := s.load(ctx, repositories.Filter{})
	if err != nil {
		return nil, err
	}
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to load users")
	}

	sheets := ledger.UserGroups(ctx, subject, groups, expenses, settlements, ledger.NewDirectory(users, s.Store))
	for _, gb := range sheets {
		logSkipped(logrus.Fields{"user_id": subject, "group_id": gb.GroupID}, gb.Skipped)
	}
	return sheets, nil
}

// GroupBalance returns the sheet of one group. The subject must be a member.
func (s *DashboardService) GroupBalance(ctx context.Context, subject models.UserID, groupID models.GroupID) (ledger.GroupBalance, error) {
	if err := requireSubject(subject); err != nil {
		return ledger.GroupBalance{}, err
	}

	groups, err := s.Store.ListGroups(ctx)
	if err != nil {
		return ledger.GroupBalance{}, utils.ErrorHandler(err, "failed to load groups")
	}

	var (
		group models.Group
		found bool
	)
	for _, g := range groups {
		if g.ID == groupID {
			group, found = g, true
			break
		}
	}
	if !found {
		return ledger.GroupBalance{}, fmt.Errorf("group %s: %w", groupID, ErrRecordNotFound)
	}
	if !group.HasMember(subject) {
		return ledger.GroupBalance{}, ErrNotGroupMember
	}

	expenses, settlements, err := s.load(ctx, repositories.Group(groupID))
	if err != nil {
		return ledger.GroupBalance{}, err
	}
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return ledger.GroupBalance{}, utils.ErrorHandler(err, "failed to load users")
	}

	sheet := ledger.GroupSheet(ctx, subject, group, expenses, settlements, ledger.NewDirectory(users, s.Store))
	logSkipped(logrus.Fields{"user_id": subject, "group_id": groupID}, sheet.Skipped)
	return sheet, nil
}

// PairBalance nets the 1-to-1 records between subject and other. A
// counterparty without a user record gets the placeholder name.
func (s *DashboardService) PairBalance(ctx context.Context, subject, other models.UserID) (Pair, error) {
	if err := requireSubject(subject); err != nil {
		return Pair{}, err
	}

	expenses, settlements, err := s.load(ctx, repositories.OneToOne())
	if err != nil {
		return Pair{}, err
	}
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return Pair{}, utils.ErrorHandler(err, "failed to load users")
	}

	amount := ledger.PairBalance(subject, other, ledger.OneToOne(), expenses, settlements)
	return Pair{
		User:   ledger.NewDirectory(users, s.Store).Resolve(ctx, other),
		Amount: amount,
	}, nil
}

func (s *DashboardService) load(ctx context.Context, f repositories.Filter) ([]models.Expense, []models.Settlement, error) {
	expenses, err := s.Store.ListExpenses(ctx, f)
	if err != nil {
		return nil, nil, utils.ErrorHandler(err, "failed to load expenses")
	}
	settlements, err := s.Store.ListSettlements(ctx, f)
	if err != nil {
		return nil, nil, utils.ErrorHandler(err, "failed to load settlements")
	}
	return expenses, settlements, nil
}

func (s *DashboardService) yearExpenses(ctx context.Context, year int) ([]models.Expense, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, s.location())
	expenses, err := s.Store.ListExpenses(ctx, repositories.Filter{Since: start})
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to load expenses")
	}
	return expenses, nil
}
