// Package repository declares the storage interfaces the service layer
// depends on. Services are wired against these interfaces, not against
// the sqlite package, so tests can substitute in-memory fakes and the
// backend could be swapped without touching business logic.
package repository

import (
	"context"

	"github.com/tahsin/student-expense-tracker/internal/model"
	"github.com/tahsin/student-expense-tracker/internal/money"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a new user and fills in ID and CreatedAt. The email
	// must already be normalized; a duplicate email surfaces as
	// apperror.ErrConflict via the UNIQUE constraint — there is no
	// check-then-insert window.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByEmail returns the user with the given normalized email, or
	// apperror.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// BudgetRepository persists monthly limits. Both methods are single
// atomic upsert statements keyed on UNIQUE(user_id, month_year), so two
// concurrent requests for the same month can't race into a duplicate row.
type BudgetRepository interface {
	// EnsureLimit returns the monthly limit for (userID, monthYear),
	// materializing a row with defaultLimit if none exists yet.
	EnsureLimit(ctx context.Context, userID int64, monthYear string, defaultLimit money.Cents) (money.Cents, error)

	// SetLimit inserts or updates the limit for (userID, monthYear).
	// Idempotent.
	SetLimit(ctx context.Context, userID int64, monthYear string, limit money.Cents) error
}

// ExpenseRepository persists spending events. Every mutation matches on
// id AND user_id; zero affected rows means "not found or not owned" and
// comes back as apperror.ErrNotFound — the two cases are intentionally
// indistinguishable.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	ListByMonth(ctx context.Context, userID int64, monthYear string) ([]model.Expense, error)
	SumByMonth(ctx context.Context, userID int64, monthYear string) (money.Cents, error)
	CategoryTotals(ctx context.Context, userID int64, monthYear string) ([]model.CategoryTotal, error)
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, id, userID int64) error
}
