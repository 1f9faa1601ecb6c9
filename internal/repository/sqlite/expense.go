package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
	"github.com/tahsin/student-expense-tracker/internal/model"
	"github.com/tahsin/student-expense-tracker/internal/money"
	"github.com/tahsin/student-expense-tracker/internal/repository"
)

// compile-time check that *DB implements repository.ExpenseRepository
var _ repository.ExpenseRepository = (*DB)(nil)

// Create inserts a new expense and fills in the generated ID and
// CreatedAt. Amounts arrive as cents; any sign is accepted here — the
// service layer decides validation policy.
func (db *DB) Create(ctx context.Context, expense *model.Expense) error {
	expense.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO expenses (user_id, description, amount_cents, category, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.UserID,
		expense.Description,
		int64(expense.Amount),
		expense.Category,
		expense.Date,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting expense: %w", err)
	}

	expense.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new expense id: %w", err)
	}

	return nil
}

// ListByMonth returns the user's expenses whose date falls in monthYear,
// most recent first: date DESC, then created_at DESC as the tie-break,
// then id DESC so equal timestamps still order deterministically.
//
// Month membership is decided by the expense's calendar date, not its
// creation timestamp — dates are stored as "2006-01-02" text, so the
// first seven characters are exactly the month key.
func (db *DB) ListByMonth(ctx context.Context, userID int64, monthYear string) ([]model.Expense, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, description, amount_cents, category, date, created_at
		 FROM expenses
		 WHERE user_id = ? AND substr(date, 1, 7) = ?
		 ORDER BY date DESC, created_at DESC, id DESC`,
		userID, monthYear,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing expenses: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		var cents int64
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Description,
			&cents,
			&e.Category,
			&e.Date,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning expense: %w", err)
		}
		e.Amount = money.Cents(cents)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating expenses: %w", err)
	}

	return expenses, nil
}

// SumByMonth totals the user's expense amounts for monthYear.
// An empty month sums to zero.
func (db *DB) SumByMonth(ctx context.Context, userID int64, monthYear string) (money.Cents, error) {
	var total int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM expenses
		 WHERE user_id = ? AND substr(date, 1, 7) = ?`,
		userID, monthYear,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sqlite: summing expenses: %w", err)
	}
	return money.Cents(total), nil
}

// CategoryTotals returns per-category totals and counts for the user's
// expenses in monthYear, biggest spender first.
func (db *DB) CategoryTotals(ctx context.Context, userID int64, monthYear string) ([]model.CategoryTotal, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT category, COALESCE(SUM(amount_cents), 0), COUNT(*)
		 FROM expenses
		 WHERE user_id = ? AND substr(date, 1, 7) = ?
		 GROUP BY category
		 ORDER BY SUM(amount_cents) DESC, category ASC`,
		userID, monthYear,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: summarizing categories: %w", err)
	}
	defer rows.Close()

	totals := []model.CategoryTotal{}
	for rows.Next() {
		var t model.CategoryTotal
		var cents int64
		if err := rows.Scan(&t.Category, &cents, &t.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category total: %w", err)
		}
		t.Total = money.Cents(cents)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating category totals: %w", err)
	}

	return totals, nil
}

// Update replaces description, amount, category, and date of the expense
// matching both expense.ID and expense.UserID. Zero affected rows means
// the row doesn't exist or belongs to someone else; both come back as
// apperror.ErrNotFound so ownership can't be probed.
func (db *DB) Update(ctx context.Context, expense *model.Expense) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE expenses
		 SET description = ?, amount_cents = ?, category = ?, date = ?
		 WHERE id = ? AND user_id = ?`,
		expense.Description,
		int64(expense.Amount),
		expense.Category,
		expense.Date,
		expense.ID,
		expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating expense %d: %w", expense.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of expense %d: %w", expense.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("expense", expense.ID)
	}

	return nil
}

// Delete removes the expense matching both id and userID, under the same
// zero-rows-is-not-found rule as Update.
func (db *DB) Delete(ctx context.Context, id, userID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting expense %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete of expense %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("expense", id)
	}

	return nil
}
