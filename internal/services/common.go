package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/pkg/utils"
)

var (
	ErrNotAuthenticated = ledger.ErrNotAuthenticated
	ErrRecordNotFound   = models.ErrRecordNotFound
	ErrNotGroupMember   = errors.New("not a member of this group")
)

// GenerateReference returns a job run id such as "REM20250301080000-<uuid>".
func GenerateReference(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%s-%s", prefix, now.Format("20060102150405"), uuid.NewString())
}

func requireSubject(subject models.UserID) error {
	if subject == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// logSkipped warns once per malformed expense left out of a computation.
func logSkipped(fields logrus.Fields, skipped []error) {
	for _, err := range skipped {
		entry := utils.Logger.WithFields(fields).WithError(err)
		var se *models.SplitError
		if errors.As(err, &se) {
			entry = entry.WithField("expense_id", se.ExpenseID)
		}
		entry.Warn("skipping malformed expense")
	}
}
