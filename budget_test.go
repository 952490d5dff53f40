package main

import (
	"testing"
	"time"

	"betrack/models"
)

func TestBudgetDue(t *testing.T) {
	cases := []struct {
		name       string
		budgetType string
		lastReset  time.Time
		now        time.Time
		want       bool
	}{
		{"monthly same month", models.BudgetMonthly, date(2025, 1, 15), date(2025, 1, 31), false},
		{"monthly next month", models.BudgetMonthly, date(2025, 1, 15), date(2025, 2, 1), true},
		{"monthly year wrap", models.BudgetMonthly, date(2024, 12, 20), date(2025, 1, 2), true},
		{"monthly same month next year", models.BudgetMonthly, date(2024, 3, 1), date(2025, 3, 1), true},
		{"yearly same year", models.BudgetYearly, date(2025, 1, 15), date(2025, 11, 30), false},
		{"yearly next year", models.BudgetYearly, date(2025, 6, 1), date(2026, 1, 1), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := budgetDue(tc.budgetType, tc.lastReset, tc.now); got != tc.want {
				t.Errorf("budgetDue(%s, %v, %v) = %v, want %v", tc.budgetType, tc.lastReset, tc.now, got, tc.want)
			}
		})
	}
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestResetDueBudgetsMonthlyRollover(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	created := date(2025, 1, 15)
	mustCreateCategory(t, user.ID, "Groceries", models.TypeExpense, "500", models.BudgetMonthly, created)
	mustRecord(t, user.ID, "Groceries", models.TypeExpense, "80", date(2025, 1, 20))

	cat := reloadCategory(t, user.ID, "Groceries", models.TypeExpense)
	assertDecimal(t, *cat.Used, "80", "used before sweep")

	rep, err := ResetDueBudgets(date(2025, 2, 1))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if rep.Scanned != 1 || rep.Reset != 1 || len(rep.Failures) != 0 {
		t.Fatalf("report = %+v, want scanned=1 reset=1", rep)
	}

	cat = reloadCategory(t, user.ID, "Groceries", models.TypeExpense)
	assertDecimal(t, *cat.Used, "0", "used after sweep")
	if cat.LastReset == nil || !cat.LastReset.Equal(date(2025, 2, 1)) {
		t.Errorf("lastReset = %v, want 2025-02-01", cat.LastReset)
	}

	// Running again inside the same period is a no-op.
	rep, err = ResetDueBudgets(date(2025, 2, 20))
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if rep.Reset != 0 {
		t.Errorf("second sweep reset = %d, want 0", rep.Reset)
	}
}

func TestResetDueBudgetsYearly(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	mustCreateCategory(t, user.ID, "Travel", models.TypeExpense, "3000", models.BudgetYearly, date(2025, 3, 1))
	mustRecord(t, user.ID, "Travel", models.TypeExpense, "1200", date(2025, 4, 10))

	// Month rollovers within the year leave a yearly budget alone.
	rep, err := ResetDueBudgets(date(2025, 8, 1))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if rep.Reset != 0 {
		t.Fatalf("mid-year sweep reset = %d, want 0", rep.Reset)
	}
	cat := reloadCategory(t, user.ID, "Travel", models.TypeExpense)
	assertDecimal(t, *cat.Used, "1200", "used mid-year")

	rep, err = ResetDueBudgets(date(2026, 1, 1))
	if err != nil {
		t.Fatalf("new-year sweep: %v", err)
	}
	if rep.Reset != 1 {
		t.Fatalf("new-year sweep reset = %d, want 1", rep.Reset)
	}
	cat = reloadCategory(t, user.ID, "Travel", models.TypeExpense)
	assertDecimal(t, *cat.Used, "0", "used after new-year sweep")
}

func TestResetDueBudgetsScopesToExpenseWithBudget(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	created := date(2025, 1, 15)
	mustCreateCategory(t, user.ID, "Groceries", models.TypeExpense, "500", models.BudgetMonthly, created)
	mustCreateCategory(t, user.ID, "Misc", models.TypeExpense, "", "", created)
	mustCreateCategory(t, user.ID, "Salary", models.TypeIncome, "", "", created)

	rep, err := ResetDueBudgets(date(2025, 2, 1))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if rep.Scanned != 1 {
		t.Errorf("scanned = %d, want 1 (only budgeted expense categories)", rep.Scanned)
	}
	if rep.Reset != 1 {
		t.Errorf("reset = %d, want 1", rep.Reset)
	}
}

func TestResetDueBudgetsMultipleOwners(t *testing.T) {
	setupTestDB(t)
	alice := mustCreateUser(t, "alice")
	bob := mustCreateUser(t, "bob")
	created := date(2025, 1, 15)
	mustCreateCategory(t, alice.ID, "Groceries", models.TypeExpense, "500", models.BudgetMonthly, created)
	mustCreateCategory(t, bob.ID, "Groceries", models.TypeExpense, "200", models.BudgetMonthly, date(2025, 2, 3))
	mustRecord(t, alice.ID, "Groceries", models.TypeExpense, "80", date(2025, 1, 20))
	mustRecord(t, bob.ID, "Groceries", models.TypeExpense, "40", date(2025, 2, 5))

	// Only alice's January budget has rolled over by Feb 10.
	rep, err := ResetDueBudgets(date(2025, 2, 10))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if rep.Scanned != 2 || rep.Reset != 1 {
		t.Fatalf("report = %+v, want scanned=2 reset=1", rep)
	}
	assertDecimal(t, *reloadCategory(t, alice.ID, "Groceries", models.TypeExpense).Used, "0", "alice used")
	assertDecimal(t, *reloadCategory(t, bob.ID, "Groceries", models.TypeExpense).Used, "40", "bob used")
}
