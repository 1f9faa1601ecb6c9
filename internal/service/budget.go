package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
	"github.com/tahsin/student-expense-tracker/internal/auth"
	"github.com/tahsin/student-expense-tracker/internal/model"
	"github.com/tahsin/student-expense-tracker/internal/money"
	"github.com/tahsin/student-expense-tracker/internal/repository"
)

// MonthKeyLayout is the "year-month" granularity budgets are keyed on.
const MonthKeyLayout = "2006-01"

// CurrentMonthKey returns the month key for wall-clock now, e.g. "2024-01".
func CurrentMonthKey() string {
	return time.Now().Format(MonthKeyLayout)
}

// BudgetService computes monthly snapshots and stores limits.
type BudgetService struct {
	budgets      repository.BudgetRepository
	expenses     repository.ExpenseRepository
	defaultLimit money.Cents
	logger       *slog.Logger
}

// NewBudgetService creates a BudgetService. defaultLimit is the monthly
// limit materialized on a user's first budget query in a month
// (configuration; 200.00 by default).
func NewBudgetService(
	budgets repository.BudgetRepository,
	expenses repository.ExpenseRepository,
	defaultLimit money.Cents,
	logger *slog.Logger,
) *BudgetService {
	return &BudgetService{
		budgets:      budgets,
		expenses:     expenses,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Current returns the caller's budget snapshot for the current month:
// the limit (created with the default on first read), the spend total
// over expense dates in the month, and the remaining balance.
//
// Remaining is floored at zero — overspending shows as remaining=0, and
// callers wanting the overshoot compare spent against limit themselves.
func (s *BudgetService) Current(ctx context.Context, identity auth.Identity) (*model.BudgetSnapshot, error) {
	monthYear := CurrentMonthKey()

	limit, err := s.budgets.EnsureLimit(ctx, identity.UserID, monthYear, s.defaultLimit)
	if err != nil {
		return nil, fmt.Errorf("service/budget: ensuring limit: %w", err)
	}

	spent, err := s.expenses.SumByMonth(ctx, identity.UserID, monthYear)
	if err != nil {
		return nil, fmt.Errorf("service/budget: summing expenses: %w", err)
	}

	remaining := limit - spent
	if remaining < 0 {
		remaining = 0
	}

	return &model.BudgetSnapshot{
		Limit:     limit,
		Spent:     spent,
		Remaining: remaining,
		MonthYear: monthYear,
	}, nil
}

// SetLimit stores a new monthly limit for the current month. Upsert
// semantics, idempotent. Negative limits are rejected; zero is allowed.
func (s *BudgetService) SetLimit(ctx context.Context, identity auth.Identity, limit money.Cents) (money.Cents, error) {
	if limit < 0 {
		return 0, apperror.ValidationFailed("limit", "budget limit must be a non-negative number")
	}

	monthYear := CurrentMonthKey()
	if err := s.budgets.SetLimit(ctx, identity.UserID, monthYear, limit); err != nil {
		return 0, fmt.Errorf("service/budget: setting limit: %w", err)
	}

	s.logger.Info("budget limit updated",
		slog.Int64("userID", identity.UserID),
		slog.String("month", monthYear),
		slog.String("limit", limit.String()),
	)
	return limit, nil
}
