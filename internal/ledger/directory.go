package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"splitledger/internal/models"
)

// UnknownUserName is shown for counterparties with no user record.
const UnknownUserName = "Unknown"

// UserGetter loads a single user. Implementations report a missing user
// with an error wrapping ErrRecordNotFound.
type UserGetter interface {
	GetUserByID(ctx context.Context, id models.UserID) (models.User, error)
}

// UserGetterFunc adapts a function to UserGetter.
type UserGetterFunc func(ctx context.Context, id models.UserID) (models.User, error)

func (f UserGetterFunc) GetUserByID(ctx context.Context, id models.UserID) (models.User, error) {
	return f(ctx, id)
}

// Directory interns user lookups for a single computation. It is seeded from
// a snapshot and asks the fallback only for ids it has not seen. A Directory
// must not outlive the request or job that created it.
type Directory struct {
	mu       sync.RWMutex
	users    map[models.UserID]models.User
	missing  map[models.UserID]struct{}
	fallback UserGetter
	loads    singleflight.Group
}

// NewDirectory seeds a directory with users. fallback may be nil.
func NewDirectory(users []models.User, fallback UserGetter) *Directory {
	d := &Directory{
		users:    make(map[models.UserID]models.User, len(users)),
		missing:  make(map[models.UserID]struct{}),
		fallback: fallback,
	}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

// Lookup returns the user with the given id. A missing user yields an error
// wrapping ErrRecordNotFound; other errors come from the fallback.
func (d *Directory) Lookup(ctx context.Context, id models.UserID) (models.User, error) {
	if u, ok, gone := d.cached(id); ok {
		return u, nil
	} else if gone || d.fallback == nil {
		return models.User{}, fmt.Errorf("user %s: %w", id, ErrRecordNotFound)
	}

	v, err, _ := d.loads.Do(string(id), func() (any, error) {
		// another caller may have finished loading while this one waited
		if u, ok, gone := d.cached(id); ok {
			return u, nil
		} else if gone {
			return nil, ErrRecordNotFound
		}

		u, err := d.fallback.GetUserByID(ctx, id)
		d.mu.Lock()
		defer d.mu.Unlock()
		switch {
		case err == nil:
			d.users[id] = u
		case errors.Is(err, ErrRecordNotFound):
			d.missing[id] = struct{}{}
		}
		return u, err
	})
	if err != nil {
		return models.User{}, fmt.Errorf("user %s: %w", id, err)
	}
	return v.(models.User), nil
}

func (d *Directory) cached(id models.UserID) (models.User, bool, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	_, gone := d.missing[id]
	return u, ok, gone
}

// Resolve is Lookup with a placeholder for any failure.
func (d *Directory) Resolve(ctx context.Context, id models.UserID) models.User {
	u, err := d.Lookup(ctx, id)
	if err != nil {
		return models.User{ID: id, Name: UnknownUserName}
	}
	return u
}
