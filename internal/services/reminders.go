package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"splitledger/internal/ledger"
	"splitledger/internal/repositories"
	"splitledger/pkg/utils"
)

// Notifier delivers one reminder to a debtor.
type Notifier interface {
	NotifyDebtor(ctx context.Context, report ledger.DebtorReport) error
}

// EmailNotifier sends reminders through SMTP.
type EmailNotifier struct {
	Mailer *utils.Mailer
}

func (n EmailNotifier) NotifyDebtor(_ context.Context, report ledger.DebtorReport) error {
	lines := make([]utils.ReminderLine, 0, len(report.Debts))
	for _, d := range report.Debts {
		lines = append(lines, utils.ReminderLine{Name: d.Name, Amount: d.Amount, Since: d.Since})
	}
	subject, body := utils.DebtorReminderEmail(report.Name, lines)
	return n.Mailer.SendEmail(report.Email, subject, body)
}

// LogNotifier only logs reminders. Used when SMTP is not configured.
type LogNotifier struct{}

func (LogNotifier) NotifyDebtor(_ context.Context, report ledger.DebtorReport) error {
	utils.Logger.WithFields(logrus.Fields{
		"user_id": report.UserID,
		"debts":   len(report.Debts),
	}).Info("reminder not sent, mail is disabled")
	return nil
}

// ReminderService finds 1-to-1 debtors and notifies them.
type ReminderService struct {
	Store     repositories.RecordStore
	Extractor ledger.Extractor
	Notifier  Notifier
	Now       func() time.Time
}

func NewReminderService(store repositories.RecordStore, workers int, notifier Notifier) *ReminderService {
	return &ReminderService{
		Store:     store,
		Extractor: ledger.Extractor{Workers: workers, Fallback: store},
		Notifier:  notifier,
		Now:       time.Now,
	}
}

// ReminderRun summarises one SendReminders call.
type ReminderRun struct {
	RunID    string
	Debtors  int
	Sent     int
	Failed   int
	Skipped  int
	Failures []ledger.UserFailure
}

// OutstandingDebts extracts every user who owes money outside of groups.
func (s *ReminderService) OutstandingDebts(ctx context.Context) (ledger.ExtractResult, error) {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return ledger.ExtractResult{}, utils.ErrorHandler(err, "failed to load users")
	}
	expenses, err := s.Store.ListExpenses(ctx, repositories.OneToOne())
	if err != nil {
		return ledger.ExtractResult{}, utils.ErrorHandler(err, "failed to load expenses")
	}
	settlements, err := s.Store.ListSettlements(ctx, repositories.OneToOne())
	if err != nil {
		return ledger.ExtractResult{}, utils.ErrorHandler(err, "failed to load settlements")
	}

	res := s.Extractor.Extract(ctx, ledger.Snapshot{Users: users, Expenses: expenses, Settlements: settlements})

	logSkipped(logrus.Fields{"job": "reminders"}, res.Malformed)
	for _, f := range res.Failures {
		utils.Logger.WithFields(logrus.Fields{
			"job":     "reminders",
			"user_id": f.UserID,
		}).WithError(f.Err).Error("failed to compute outstanding debts")
	}
	return res, nil
}

// SendReminders notifies every debtor concurrently. A failed delivery is
// logged and counted; it never stops the others.
func (s *ReminderService) SendReminders(ctx context.Context) (ReminderRun, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	run := ReminderRun{RunID: GenerateReference("REM", now())}
	log := utils.Logger.WithField("run_id", run.RunID)

	res, err := s.OutstandingDebts(ctx)
	if err != nil {
		return run, err
	}
	run.Debtors = len(res.Debtors)
	run.Failures = res.Failures

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errChan = make(chan error, len(res.Debtors))
	)

	for _, report := range res.Debtors {
		if report.Email == "" {
			log.WithField("user_id", report.UserID).Warn("debtor has no email, skipping reminder")
			run.Skipped++
			continue
		}

		wg.Add(1)
		go func(report ledger.DebtorReport) {
			defer wg.Done()

			if err := s.Notifier.NotifyDebtor(ctx, report); err != nil {
				errChan <- fmt.Errorf("failed to send reminder to %s: %w", report.UserID, err)
				return
			}

			mu.Lock()
			run.Sent++
			mu.Unlock()
			log.WithFields(logrus.Fields{
				"user_id": report.UserID,
				"debts":   len(report.Debts),
			}).Info("📧 Sent reminder")
		}(report)
	}

	wg.Wait()
	close(errChan)

	for e := range errChan {
		run.Failed++
		log.Error(e)
	}

	log.WithFields(logrus.Fields{
		"debtors": run.Debtors,
		"sent":    run.Sent,
		"failed":  run.Failed,
	}).Info("✅ Finished sending debtor reminders")
	return run, nil
}
