package main

import (
	"errors"
	"testing"
	"time"

	"betrack/models"
)

func TestHistoryPeriodsDefaultsToCurrentYear(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")

	years, err := HistoryPeriods(user.ID)
	if err != nil {
		t.Fatalf("periods: %v", err)
	}
	if len(years) != 1 || years[0] != time.Now().UTC().Year() {
		t.Errorf("periods = %v, want just the current year", years)
	}
}

func TestHistoryPeriodsListsDistinctYears(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	now := date(2024, 1, 1)
	mustCreateCategory(t, user.ID, "Groceries", models.TypeExpense, "500", models.BudgetMonthly, now)
	mustRecord(t, user.ID, "Groceries", models.TypeExpense, "10", date(2024, 5, 1))
	mustRecord(t, user.ID, "Groceries", models.TypeExpense, "10", date(2024, 6, 1))
	mustRecord(t, user.ID, "Groceries", models.TypeExpense, "10", date(2025, 1, 1))

	years, err := HistoryPeriods(user.ID)
	if err != nil {
		t.Fatalf("periods: %v", err)
	}
	if len(years) != 2 || years[0] != 2024 || years[1] != 2025 {
		t.Errorf("periods = %v, want [2024 2025]", years)
	}
}

func TestHistoryDataMonthGapFills(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	now := date(2025, 2, 1)
	mustCreateCategory(t, user.ID, "Groceries", models.TypeExpense, "500", models.BudgetMonthly, now)
	mustRecord(t, user.ID, "Groceries", models.TypeExpense, "45", date(2025, 2, 14))

	// February 2025: 28 days, month is zero-based.
	points, err := HistoryData(user.ID, "month", 2025, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(points) != 28 {
		t.Fatalf("points = %d, want 28", len(points))
	}
	for _, p := range points {
		want := "0"
		if p.Day == 14 {
			want = "45"
		}
		assertDecimal(t, p.Expense, want, "expense on day")
		assertDecimal(t, p.Income, "0", "income on day")
	}
}

func TestHistoryDataYearGapFills(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	now := date(2025, 1, 1)
	mustCreateCategory(t, user.ID, "Salary", models.TypeIncome, "", "", now)
	mustRecord(t, user.ID, "Salary", models.TypeIncome, "2500", date(2025, 4, 25))

	points, err := HistoryData(user.ID, "year", 2025, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(points) != 12 {
		t.Fatalf("points = %d, want 12", len(points))
	}
	// April is month 3 zero-based.
	assertDecimal(t, points[3].Income, "2500", "april income")
	assertDecimal(t, points[4].Income, "0", "may income")
}

func TestHistoryDataBadTimeframe(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	_, err := HistoryData(user.ID, "week", 2025, 0)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct{ year, month, want int }{
		{2025, 0, 31},  // January
		{2025, 1, 28},  // February
		{2024, 1, 29},  // leap February
		{2025, 3, 30},  // April
		{2025, 11, 31}, // December
	}
	for _, tc := range cases {
		if got := daysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("daysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}
