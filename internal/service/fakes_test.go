package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
	"github.com/tahsin/student-expense-tracker/internal/auth"
	"github.com/tahsin/student-expense-tracker/internal/model"
	"github.com/tahsin/student-expense-tracker/internal/money"
)

// In-memory fakes for the repository interfaces. Hand-rolled rather than
// generated mocks so each test reads as plain Go.

type fakeUserRepo struct {
	byEmail map[string]*model.User
	nextID  int64

	createErr error // non-nil simulates a storage failure
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return apperror.Conflict("user", "email already in use")
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "no such user"}
	}
	return u, nil
}

type fakeBudgetRepo struct {
	limits map[string]money.Cents // keyed "userID/monthYear"

	err error
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{limits: make(map[string]money.Cents)}
}

func budgetKey(userID int64, monthYear string) string {
	return fmt.Sprintf("%d/%s", userID, monthYear)
}

func (f *fakeBudgetRepo) EnsureLimit(ctx context.Context, userID int64, monthYear string, defaultLimit money.Cents) (money.Cents, error) {
	if f.err != nil {
		return 0, f.err
	}
	key := budgetKey(userID, monthYear)
	if limit, ok := f.limits[key]; ok {
		return limit, nil
	}
	f.limits[key] = defaultLimit
	return defaultLimit, nil
}

func (f *fakeBudgetRepo) SetLimit(ctx context.Context, userID int64, monthYear string, limit money.Cents) error {
	if f.err != nil {
		return f.err
	}
	f.limits[budgetKey(userID, monthYear)] = limit
	return nil
}

type fakeExpenseRepo struct {
	expenses []model.Expense
	nextID   int64

	err error
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{nextID: 1}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	if f.err != nil {
		return f.err
	}
	expense.ID = f.nextID
	f.nextID++
	expense.CreatedAt = time.Now()
	f.expenses = append(f.expenses, *expense)
	return nil
}

func (f *fakeExpenseRepo) ListByMonth(ctx context.Context, userID int64, monthYear string) ([]model.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Expense{}
	for _, e := range f.expenses {
		if e.UserID == userID && strings.HasPrefix(e.Date, monthYear) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeExpenseRepo) SumByMonth(ctx context.Context, userID int64, monthYear string) (money.Cents, error) {
	if f.err != nil {
		return 0, f.err
	}
	var total money.Cents
	for _, e := range f.expenses {
		if e.UserID == userID && strings.HasPrefix(e.Date, monthYear) {
			total += e.Amount
		}
	}
	return total, nil
}

func (f *fakeExpenseRepo) CategoryTotals(ctx context.Context, userID int64, monthYear string) ([]model.CategoryTotal, error) {
	if f.err != nil {
		return nil, f.err
	}
	byCat := map[string]*model.CategoryTotal{}
	for _, e := range f.expenses {
		if e.UserID != userID || !strings.HasPrefix(e.Date, monthYear) {
			continue
		}
		t, ok := byCat[e.Category]
		if !ok {
			t = &model.CategoryTotal{Category: e.Category}
			byCat[e.Category] = t
		}
		t.Total += e.Amount
		t.Count++
	}
	out := []model.CategoryTotal{}
	for _, t := range byCat {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

func (f *fakeExpenseRepo) Update(ctx context.Context, expense *model.Expense) error {
	if f.err != nil {
		return f.err
	}
	for i, e := range f.expenses {
		if e.ID == expense.ID && e.UserID == expense.UserID {
			created := e.CreatedAt
			f.expenses[i] = *expense
			f.expenses[i].CreatedAt = created
			return nil
		}
	}
	return apperror.NotFound("expense", expense.ID)
}

func (f *fakeExpenseRepo) Delete(ctx context.Context, id, userID int64) error {
	if f.err != nil {
		return f.err
	}
	for i, e := range f.expenses {
		if e.ID == id && e.UserID == userID {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("expense", id)
}

// Shared test helpers.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func newTestAuthService(t *testing.T, users *fakeUserRepo) *AuthService {
	t.Helper()
	return NewAuthService(
		users,
		newTestTokenService(t),
		auth.NewPasswordService(bcrypt.MinCost),
		testLogger(),
	)
}

func cents(v money.Cents) *money.Cents {
	return &v
}

// currentMonthDate returns a date string inside the current month.
func currentMonthDate(day int) string {
	return fmt.Sprintf("%s-%02d", CurrentMonthKey(), day)
}
