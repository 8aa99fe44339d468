package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"splitledger/internal/services"
	"splitledger/pkg/utils"
)

const (
	reminderTimeout = 45 * time.Second
	insightTimeout  = 30 * time.Second
)

// Jobs holds what the scheduled jobs run against.
type Jobs struct {
	ReminderSchedule string
	InsightSchedule  string
	InsightWindow    time.Duration

	Reminders *services.ReminderService
	Insights  *services.InsightService
	Now       func() time.Time
}

func StartCronJob(jobs Jobs) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(jobs.ReminderSchedule, func() {
		if err := jobs.SendReminderEmailsToDebtors(); err != nil {
			utils.Logger.Errorf("Cron job failed to send reminder emails: %v", err)
		}
	})
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to schedule debtor reminder job")
	}

	_, err = c.AddFunc(jobs.InsightSchedule, func() {
		if err := jobs.CollectMonthlyInsights(); err != nil {
			utils.Logger.Errorf("Cron job failed to collect spending insights: %v", err)
		}
	})
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to schedule insight job")
	}

	c.Start()
	utils.Logger.WithFields(logrus.Fields{
		"reminders": jobs.ReminderSchedule,
		"insights":  jobs.InsightSchedule,
	}).Info("Cron jobs started")
	return c, nil
}

// -------------------------------------------------------------
// Send reminders to every user with outstanding 1-to-1 debts
// -------------------------------------------------------------
func (j Jobs) SendReminderEmailsToDebtors() error {
	ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
	defer cancel()

	run, err := j.Reminders.SendReminders(ctx)
	if err != nil {
		return err
	}

	utils.Logger.WithFields(logrus.Fields{
		"run_id":   run.RunID,
		"debtors":  run.Debtors,
		"sent":     run.Sent,
		"failed":   run.Failed,
		"skipped":  run.Skipped,
		"failures": len(run.Failures),
	}).Info("Finished sending debtor reminders")
	return nil
}

// -------------------------------------------------------------
// Collect the spending feed for the insight window
// -------------------------------------------------------------
func (j Jobs) CollectMonthlyInsights() error {
	ctx, cancel := context.WithTimeout(context.Background(), insightTimeout)
	defer cancel()

	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	since := now().Add(-j.InsightWindow)

	feed, err := j.Insights.Feed(ctx, since)
	if err != nil {
		return err
	}

	runID := services.GenerateReference("INS", now())
	for _, insight := range feed {
		utils.Logger.WithFields(logrus.Fields{
			"run_id":      runID,
			"user_id":     insight.UserID,
			"expenses":    len(insight.Expenses),
			"total_spent": insight.TotalSpent.StringFixed(2),
			"categories":  len(insight.Categories),
		}).Info("spending insight ready")
	}
	utils.Logger.WithFields(logrus.Fields{"run_id": runID, "users": len(feed)}).Info("Finished collecting spending insights")
	return nil
}
