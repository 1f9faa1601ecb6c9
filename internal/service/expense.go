package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
	"github.com/tahsin/student-expense-tracker/internal/auth"
	"github.com/tahsin/student-expense-tracker/internal/model"
	"github.com/tahsin/student-expense-tracker/internal/money"
	"github.com/tahsin/student-expense-tracker/internal/repository"
)

// ExpenseService owns expense CRUD and the category breakdown. Every
// operation is scoped to the caller's identity; there is no way to reach
// another user's rows through this service.
type ExpenseService struct {
	expenses repository.ExpenseRepository
	logger   *slog.Logger
}

// NewExpenseService creates an ExpenseService.
func NewExpenseService(expenses repository.ExpenseRepository, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		logger:   logger,
	}
}

// ExpenseInput is the caller-supplied portion of an expense. Amount is a
// pointer so "absent" and "zero" stay distinguishable: zero and negative
// amounts are accepted (a negative amount reads as a refund), but a
// missing amount is a validation error.
type ExpenseInput struct {
	Description string
	Amount      *money.Cents
	Category    string
	Date        string
}

// validate enforces the add/update field contract. Note what it does NOT
// check: the amount's sign.
func (in *ExpenseInput) validate() error {
	if in.Description == "" {
		return apperror.ValidationFailed("description", "description is required")
	}
	if in.Amount == nil {
		return apperror.ValidationFailed("amount", "a numeric amount is required")
	}
	if in.Category == "" {
		return apperror.ValidationFailed("category", "category is required")
	}
	if in.Date == "" {
		return apperror.ValidationFailed("date", "date is required")
	}
	if _, err := time.Parse(model.DateLayout, in.Date); err != nil {
		return apperror.ValidationFailed("date", "date must be in YYYY-MM-DD format")
	}
	return nil
}

// Add records a new expense for the caller and returns its id.
func (s *ExpenseService) Add(ctx context.Context, identity auth.Identity, in ExpenseInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	expense := &model.Expense{
		UserID:      identity.UserID,
		Description: in.Description,
		Amount:      *in.Amount,
		Category:    in.Category,
		Date:        in.Date,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return 0, fmt.Errorf("service/expense: adding expense: %w", err)
	}

	s.logger.Info("expense added",
		slog.Int64("userID", identity.UserID),
		slog.Int64("expenseID", expense.ID),
		slog.String("category", expense.Category),
	)
	return expense.ID, nil
}

// List returns the caller's current-month expenses, most recent first.
// An empty month returns an empty slice, not an error.
func (s *ExpenseService) List(ctx context.Context, identity auth.Identity) ([]model.Expense, error) {
	expenses, err := s.expenses.ListByMonth(ctx, identity.UserID, CurrentMonthKey())
	if err != nil {
		return nil, fmt.Errorf("service/expense: listing expenses: %w", err)
	}
	return expenses, nil
}

// CategorySummary returns the caller's per-category totals for the
// current month, largest total first. This feeds the dashboard's
// spending-distribution chart.
func (s *ExpenseService) CategorySummary(ctx context.Context, identity auth.Identity) ([]model.CategoryTotal, error) {
	totals, err := s.expenses.CategoryTotals(ctx, identity.UserID, CurrentMonthKey())
	if err != nil {
		return nil, fmt.Errorf("service/expense: summarizing categories: %w", err)
	}
	return totals, nil
}

// Update fully replaces the mutable fields of the caller's expense.
// A foreign or nonexistent id yields apperror.ErrNotFound.
func (s *ExpenseService) Update(ctx context.Context, identity auth.Identity, expenseID int64, in ExpenseInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	expense := &model.Expense{
		ID:          expenseID,
		UserID:      identity.UserID,
		Description: in.Description,
		Amount:      *in.Amount,
		Category:    in.Category,
		Date:        in.Date,
	}
	if err := s.expenses.Update(ctx, expense); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/expense: updating expense %d: %w", expenseID, err)
	}

	return nil
}

// Delete removes the caller's expense, under the same not-found rule as
// Update.
func (s *ExpenseService) Delete(ctx context.Context, identity auth.Identity, expenseID int64) error {
	if err := s.expenses.Delete(ctx, expenseID, identity.UserID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/expense: deleting expense %d: %w", expenseID, err)
	}

	s.logger.Info("expense deleted",
		slog.Int64("userID", identity.UserID),
		slog.Int64("expenseID", expenseID),
	)
	return nil
}
