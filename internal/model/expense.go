package model

import (
	"time"

	"github.com/tahsin/student-expense-tracker/internal/money"
)

// DateLayout is the calendar-date format used for Expense.Date.
const DateLayout = "2006-01-02"

// Expense is one spending event.
//
// Date is the calendar date the expense happened on — distinct from
// CreatedAt, which records when the row was inserted and is only used as
// an ordering tie-break. Month membership for budget aggregation is
// decided by Date, never CreatedAt.
//
// Category is a free-text label, not a closed enum.
type Expense struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"-"`
	Description string      `json:"description"`
	Amount      money.Cents `json:"amount"`
	Category    string      `json:"category"`
	Date        string      `json:"date"` // "2006-01-02"
	CreatedAt   time.Time   `json:"createdAt"`
}

// CategoryTotal is one slice of the per-category spending breakdown.
type CategoryTotal struct {
	Category string      `json:"category"`
	Total    money.Cents `json:"total"`
	Count    int         `json:"count"`
}
