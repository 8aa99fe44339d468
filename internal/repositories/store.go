package repositories

import (
	"context"
	"time"

	"splitledger/internal/models"
)

// GroupMatch selects records by their group id.
type GroupMatch int

const (
	// AnyGroup applies no group predicate.
	AnyGroup GroupMatch = iota
	// NoGroup keeps 1-to-1 records only.
	NoGroup
	// InGroup keeps records of Filter.GroupID.
	InGroup
)

// Filter narrows expense and settlement reads. A zero Filter matches
// everything.
type Filter struct {
	Group   GroupMatch
	GroupID models.GroupID
	// Since is an inclusive lower bound on the record date. Zero means none.
	Since time.Time
}

func OneToOne() Filter { return Filter{Group: NoGroup} }

func Group(id models.GroupID) Filter { return Filter{Group: InGroup, GroupID: id} }

// Matches reports whether a record with the given group id and date passes
// the filter. Store implementations that cannot push a predicate down use it.
func (f Filter) Matches(groupID models.GroupID, date time.Time) bool {
	switch f.Group {
	case NoGroup:
		if groupID != "" {
			return false
		}
	case InGroup:
		if groupID != f.GroupID {
			return false
		}
	}
	return f.Since.IsZero() || !date.Before(f.Since)
}

// RecordStore is the read side of the expense database. Every call is a
// point-in-time snapshot; nothing here writes.
type RecordStore interface {
	ListExpenses(ctx context.Context, f Filter) ([]models.Expense, error)
	ListSettlements(ctx context.Context, f Filter) ([]models.Settlement, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	// GetUserByID returns an error wrapping models.ErrRecordNotFound for
	// unknown ids.
	GetUserByID(ctx context.Context, id models.UserID) (models.User, error)
}
