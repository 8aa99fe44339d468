package ledger

import (
	"errors"

	"splitledger/internal/models"
)

var (
	// ErrNotAuthenticated is returned when no subject identity can be resolved.
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrRecordNotFound    = models.ErrRecordNotFound
	ErrInconsistentSplit = models.ErrInconsistentSplit
)
