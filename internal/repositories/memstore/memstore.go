package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/repositories"
)

// Store is an in-memory RecordStore used for tests and local runs.
type Store struct {
	mu          sync.RWMutex
	users       []models.User
	groups      []models.Group
	expenses    []models.Expense
	settlements []models.Settlement
}

var _ repositories.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Seed is the on-disk layout read by NewFromFile.
type Seed struct {
	Users       []models.User       `json:"users"`
	Groups      []models.Group      `json:"groups"`
	Expenses    []models.Expense    `json:"expenses"`
	Settlements []models.Settlement `json:"settlements"`
}

// NewFromFile loads a JSON seed. Records without an id get a fresh one.
func NewFromFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}

	s := New()
	for _, u := range seed.Users {
		s.AddUser(u)
	}
	for _, g := range seed.Groups {
		s.AddGroup(g)
	}
	for _, e := range seed.Expenses {
		s.AddExpense(e)
	}
	for _, st := range seed.Settlements {
		s.AddSettlement(st)
	}
	return s, nil
}

func (s *Store) AddUser(u models.User) models.User {
	if u.ID == "" {
		u.ID = models.UserID(uuid.NewString())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
	return u
}

func (s *Store) AddGroup(g models.Group) models.Group {
	if g.ID == "" {
		g.ID = models.GroupID(uuid.NewString())
	}
	members := make([]models.GroupMember, len(g.Members))
	for i, m := range g.Members {
		m.GroupID = g.ID
		members[i] = m
	}
	g.Members = members

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, g)
	return g
}

func (s *Store) AddExpense(e models.Expense) models.Expense {
	if e.ID == "" {
		e.ID = models.ExpenseID(uuid.NewString())
	}
	e.Splits = append([]models.Split(nil), e.Splits...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return e
}

func (s *Store) AddSettlement(st models.Settlement) models.Settlement {
	if st.ID == "" {
		st.ID = models.SettlementID(uuid.NewString())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settlements = append(s.settlements, st)
	return st
}

func (s *Store) ListExpenses(ctx context.Context, f repositories.Filter) ([]models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Expense{}
	for _, e := range s.expenses {
		if !f.Matches(e.GroupID, e.Date) {
			continue
		}
		e.Splits = append([]models.Split(nil), e.Splits...)
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) ListSettlements(ctx context.Context, f repositories.Filter) ([]models.Settlement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Settlement{}
	for _, st := range s.settlements {
		if f.Matches(st.GroupID, st.Date) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User{}, s.users...), nil
}

func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		g.Members = append([]models.GroupMember(nil), g.Members...)
		out = append(out, g)
	}
	return out, nil
}

func (s *Store) GetUserByID(ctx context.Context, id models.UserID) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", id, models.ErrRecordNotFound)
}
