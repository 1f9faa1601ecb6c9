package sqlite

import (
	"context"
	"testing"

	"github.com/tahsin/student-expense-tracker/internal/money"
)

func TestEnsureLimit_MaterializesDefault(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "budget@example.com")
	ctx := context.Background()

	limit, err := db.EnsureLimit(ctx, user.ID, "2024-01", money.Cents(20000))
	if err != nil {
		t.Fatalf("EnsureLimit() error = %v", err)
	}
	if limit != 20000 {
		t.Errorf("EnsureLimit() = %d, want 20000", limit)
	}

	// Second read must return the stored row, not re-apply the default.
	limit, err = db.EnsureLimit(ctx, user.ID, "2024-01", money.Cents(999))
	if err != nil {
		t.Fatalf("EnsureLimit() second call error = %v", err)
	}
	if limit != 20000 {
		t.Errorf("EnsureLimit() second call = %d, want stored 20000", limit)
	}

	if n := countBudgetRows(t, db, user.ID, "2024-01"); n != 1 {
		t.Errorf("budget rows = %d, want 1", n)
	}
}

func TestSetLimit_UpsertIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "upsert@example.com")
	ctx := context.Background()

	// Insert path, then update path, then a repeat of the same value.
	for _, limit := range []money.Cents{30000, 25000, 25000} {
		if err := db.SetLimit(ctx, user.ID, "2024-02", limit); err != nil {
			t.Fatalf("SetLimit(%d) error = %v", limit, err)
		}
	}

	limit, err := db.EnsureLimit(ctx, user.ID, "2024-02", money.Cents(0))
	if err != nil {
		t.Fatalf("EnsureLimit() error = %v", err)
	}
	if limit != 25000 {
		t.Errorf("limit = %d, want 25000", limit)
	}
	if n := countBudgetRows(t, db, user.ID, "2024-02"); n != 1 {
		t.Errorf("budget rows = %d, want exactly 1 after repeated upserts", n)
	}
}

func TestBudgets_ScopedPerUserAndMonth(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	ctx := context.Background()

	if err := db.SetLimit(ctx, alice.ID, "2024-03", money.Cents(10000)); err != nil {
		t.Fatalf("SetLimit(alice) error = %v", err)
	}
	if err := db.SetLimit(ctx, bob.ID, "2024-03", money.Cents(50000)); err != nil {
		t.Fatalf("SetLimit(bob) error = %v", err)
	}

	got, err := db.EnsureLimit(ctx, alice.ID, "2024-03", money.Cents(0))
	if err != nil {
		t.Fatalf("EnsureLimit(alice) error = %v", err)
	}
	if got != 10000 {
		t.Errorf("alice's limit = %d, want 10000 (bob's budget leaked?)", got)
	}

	// A different month gets its own row with its own default.
	got, err = db.EnsureLimit(ctx, alice.ID, "2024-04", money.Cents(777))
	if err != nil {
		t.Fatalf("EnsureLimit(alice, next month) error = %v", err)
	}
	if got != 777 {
		t.Errorf("next month's limit = %d, want default 777", got)
	}
}

func countBudgetRows(t *testing.T, db *DB, userID int64, monthYear string) int {
	t.Helper()
	var n int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM budgets WHERE user_id = ? AND month_year = ?`,
		userID, monthYear,
	).Scan(&n)
	if err != nil {
		t.Fatalf("counting budget rows: %v", err)
	}
	return n
}
