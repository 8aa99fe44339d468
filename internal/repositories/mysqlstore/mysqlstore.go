package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
	"splitledger/internal/repositories"
	"splitledger/pkg/utils"
)

const queryTimeout = 5 * time.Second

// Store reads ledger records from MySQL/MariaDB. See schema.sql.
type Store struct {
	db *sql.DB
}

var _ repositories.RecordStore = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// where appends the group and date predicates of f for a table aliased as alias.
func where(alias string, f repositories.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	switch f.Group {
	case repositories.NoGroup:
		conds = append(conds, alias+".group_id IS NULL")
	case repositories.InGroup:
		conds = append(conds, alias+".group_id = ?")
		args = append(args, string(f.GroupID))
	}
	if !f.Since.IsZero() {
		conds = append(conds, alias+".date >= ?")
		args = append(args, f.Since.UTC())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func expenseQuery(f repositories.Filter) (string, []any) {
	clause, args := where("e", f)
	query := `SELECT e.id, e.description, e.category, e.amount, e.date, e.paid_by_user_id, e.group_id,
		s.user_id, s.amount, s.paid
		FROM expenses e
		LEFT JOIN expense_splits s ON s.expense_id = e.id` + clause + `
		ORDER BY e.date, e.id, s.id`
	return query, args
}

func settlementQuery(f repositories.Filter) (string, []any) {
	clause, args := where("st", f)
	query := `SELECT st.id, st.amount, st.note, st.date, st.paid_by_user_id, st.received_by_user_id, st.group_id
		FROM settlements st` + clause + `
		ORDER BY st.date, st.id`
	return query, args
}

// FUNC TO LIST EXPENSES WITH THEIR SPLITS
func (s *Store) ListExpenses(ctx context.Context, f repositories.Filter) ([]models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args := expenseQuery(f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to query expenses")
	}
	defer rows.Close()

	expenses := []models.Expense{}
	index := make(map[models.ExpenseID]int)
	for rows.Next() {
		var (
			e                 models.Expense
			category, groupID sql.NullString
			splitUser         sql.NullString
			splitAmount       decimal.NullDecimal
			splitPaid         sql.NullBool
		)
		if err := rows.Scan(&e.ID, &e.Description, &category, &e.Amount, &e.Date, &e.PaidByUserID, &groupID,
			&splitUser, &splitAmount, &splitPaid); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan expense row")
		}

		i, seen := index[e.ID]
		if !seen {
			e.Category = category.String
			e.GroupID = models.GroupID(groupID.String)
			i = len(expenses)
			index[e.ID] = i
			expenses = append(expenses, e)
		}
		if splitUser.Valid {
			expenses[i].Splits = append(expenses[i].Splits, models.Split{
				UserID: models.UserID(splitUser.String),
				Amount: splitAmount.Decimal,
				Paid:   splitPaid.Bool,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate expense rows")
	}
	return expenses, nil
}

// FUNC TO LIST SETTLEMENTS
func (s *Store) ListSettlements(ctx context.Context, f repositories.Filter) ([]models.Settlement, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args := settlementQuery(f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to query settlements")
	}
	defer rows.Close()

	settlements := []models.Settlement{}
	for rows.Next() {
		var (
			st            models.Settlement
			note, groupID sql.NullString
		)
		if err := rows.Scan(&st.ID, &st.Amount, &note, &st.Date, &st.PaidByUserID, &st.ReceivedByUserID, &groupID); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan settlement row")
		}
		st.Note = note.String
		st.GroupID = models.GroupID(groupID.String)
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate settlement rows")
	}
	return settlements, nil
}

// FUNC TO LIST USERS
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email, image_url FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to query users")
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan user row")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate user rows")
	}
	return users, nil
}

// FUNC TO LIST GROUPS WITH MEMBERS
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT g.id, g.name, g.description, g.created_by, m.user_id, m.role"+
		" FROM `groups` g"+
		" LEFT JOIN group_members m ON m.group_id = g.id"+
		" ORDER BY g.created_at, g.id, m.joined_at")
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to query groups")
	}
	defer rows.Close()

	groups := []models.Group{}
	index := make(map[models.GroupID]int)
	for rows.Next() {
		var (
			g                  models.Group
			description, owner sql.NullString
			memberID, role     sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Name, &description, &owner, &memberID, &role); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan group row")
		}
		i, seen := index[g.ID]
		if !seen {
			g.Description = description.String
			g.CreatedBy = models.UserID(owner.String)
			i = len(groups)
			index[g.ID] = i
			groups = append(groups, g)
		}
		if memberID.Valid {
			groups[i].Members = append(groups[i].Members, models.GroupMember{
				GroupID: g.ID,
				UserID:  models.UserID(memberID.String),
				Role:    role.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate group rows")
	}
	return groups, nil
}

// FUNC TO GET A SINGLE USER
func (s *Store) GetUserByID(ctx context.Context, id models.UserID) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT id, name, email, image_url FROM users WHERE id = ?", string(id))
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s: %w", id, models.ErrRecordNotFound)
		}
		return models.User{}, utils.ErrorHandler(err, "failed to retrieve user")
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (models.User, error) {
	var (
		u          models.User
		email, img sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &email, &img); err != nil {
		return models.User{}, err
	}
	u.Email = email.String
	u.ImageURL = img.String
	return u, nil
}
