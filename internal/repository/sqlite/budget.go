package sqlite

import (
	"context"
	"fmt"

	"github.com/tahsin/student-expense-tracker/internal/money"
	"github.com/tahsin/student-expense-tracker/internal/repository"
)

// compile-time check that *DB implements repository.BudgetRepository
var _ repository.BudgetRepository = (*DB)(nil)

// EnsureLimit returns the monthly limit for (userID, monthYear), creating
// a row with defaultLimit on first read of a month.
//
// The insert uses ON CONFLICT DO NOTHING against UNIQUE(user_id,
// month_year), so two concurrent first reads converge on one row instead
// of racing a check-then-insert into a duplicate-key error.
func (db *DB) EnsureLimit(ctx context.Context, userID int64, monthYear string, defaultLimit money.Cents) (money.Cents, error) {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO budgets (user_id, monthly_limit_cents, month_year)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id, month_year) DO NOTHING`,
		userID, int64(defaultLimit), monthYear,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: materializing budget for user %d month %s: %w", userID, monthYear, err)
	}

	var limit int64
	err = db.conn.QueryRowContext(ctx,
		`SELECT monthly_limit_cents FROM budgets WHERE user_id = ? AND month_year = ?`,
		userID, monthYear,
	).Scan(&limit)
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading budget for user %d month %s: %w", userID, monthYear, err)
	}

	return money.Cents(limit), nil
}

// SetLimit upserts the monthly limit for (userID, monthYear). One
// statement, idempotent: setting the same limit twice leaves exactly one
// row behind.
func (db *DB) SetLimit(ctx context.Context, userID int64, monthYear string, limit money.Cents) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO budgets (user_id, monthly_limit_cents, month_year)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id, month_year) DO UPDATE SET monthly_limit_cents = excluded.monthly_limit_cents`,
		userID, int64(limit), monthYear,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting budget for user %d month %s: %w", userID, monthYear, err)
	}
	return nil
}
