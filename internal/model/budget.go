package model

import "github.com/tahsin/student-expense-tracker/internal/money"

// Budget is one monthly spending limit. At most one row exists per
// (user, month key) pair — enforced by UNIQUE(user_id, month_year).
type Budget struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"userId"`
	MonthlyLimit money.Cents `json:"monthlyLimit"`
	MonthYear    string      `json:"monthYear"` // "2006-01"
}

// BudgetSnapshot is the aggregated view returned by GET /budget/current.
//
// Remaining is floored at zero: the snapshot never reports a negative
// balance. Callers that need the over-budget amount must compute
// Limit - Spent themselves.
type BudgetSnapshot struct {
	Limit     money.Cents `json:"limit"`
	Spent     money.Cents `json:"spent"`
	Remaining money.Cents `json:"remaining"`
	MonthYear string      `json:"monthYear"`
}
