package main

import (
	"errors"
	"testing"

	"betrack/models"
)

func TestCreateCategoryExpenseStartsAccounting(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	now := date(2025, 3, 1)
	mustCreateCategory(t, user.ID, "Groceries", models.TypeExpense, "500", models.BudgetMonthly, now)

	cat := reloadCategory(t, user.ID, "Groceries", models.TypeExpense)
	if cat.Used == nil || !cat.Used.IsZero() {
		t.Errorf("used = %v, want 0", cat.Used)
	}
	if cat.LastReset == nil || !cat.LastReset.Equal(now) {
		t.Errorf("lastReset = %v, want %v", cat.LastReset, now)
	}
	if !cat.HasBudget() {
		t.Error("HasBudget() = false, want true")
	}
}

func TestCreateCategoryIncomeIgnoresBudgetInput(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	b := dec(t, "1000")
	bt := models.BudgetMonthly
	cat, err := CreateCategory(user.ID, CategoryInput{
		Name: "Salary", Icon: "💰", Type: models.TypeIncome,
		Budget: &b, BudgetType: &bt,
	}, date(2025, 3, 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.Budget != nil || cat.BudgetType != nil || cat.Used != nil || cat.LastReset != nil {
		t.Error("income category stored budget fields, want all NULL")
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	neg := dec(t, "-10")

	cases := []struct {
		name  string
		in    CategoryInput
		field string
	}{
		{"short name", CategoryInput{Name: "ab", Type: models.TypeExpense}, "name"},
		{"long name", CategoryInput{Name: "this name is way too long for us", Type: models.TypeExpense}, "name"},
		{"bad type", CategoryInput{Name: "Stuff", Type: "transfer"}, "type"},
		{"budget without period", CategoryInput{Name: "Stuff", Type: models.TypeExpense, Budget: &neg}, "budgetType"},
		{"negative budget", CategoryInput{Name: "Stuff", Type: models.TypeExpense, Budget: &neg, BudgetType: strPtr(models.BudgetMonthly)}, "budget"},
		{"bad period", CategoryInput{Name: "Stuff", Type: models.TypeExpense, Budget: &neg, BudgetType: strPtr("weekly")}, "budgetType"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateCategory(user.ID, tc.in, date(2025, 3, 1))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Errorf("fields = %v, want %q flagged", verr.Fields, tc.field)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestCreateCategoryDuplicate(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	now := date(2025, 3, 1)
	mustCreateCategory(t, user.ID, "Groceries", models.TypeExpense, "500", models.BudgetMonthly, now)

	_, err := CreateCategory(user.ID, CategoryInput{Name: "Groceries", Type: models.TypeExpense}, now)
	if !isUniqueConstraintError(err) {
		t.Fatalf("err = %v, want unique constraint violation", err)
	}

	// Same name is fine for another owner or the other type.
	bob := mustCreateUser(t, "bob")
	mustCreateCategory(t, bob.ID, "Groceries", models.TypeExpense, "", "", now)
	mustCreateCategory(t, user.ID, "Groceries", models.TypeIncome, "", "", now)
}

func TestUpdateCategoryRenameCascades(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	now := date(2025, 3, 1)
	mustCreateCategory(t, user.ID, "Food", models.TypeExpense, "500", models.BudgetMonthly, now)
	mustRecord(t, user.ID, "Food", models.TypeExpense, "50", date(2025, 3, 10))
	mustRecord(t, user.ID, "Food", models.TypeExpense, "30", date(2025, 3, 12))

	b := dec(t, "600")
	updated, err := UpdateCategory(user.ID, "Food", CategoryInput{
		Name: "Dining", Icon: "🍜", Type: models.TypeExpense,
		Budget: &b, BudgetType: strPtr(models.BudgetMonthly),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Dining" || updated.Icon != "🍜" {
		t.Errorf("updated = %q/%q, want Dining/🍜", updated.Name, updated.Icon)
	}
	assertDecimal(t, *updated.Budget, "600", "budget")

	var stale, renamed int64
	db.Model(&models.Transaction{}).Where("user_id = ? AND category = ?", user.ID, "Food").Count(&stale)
	db.Model(&models.Transaction{}).Where("user_id = ? AND category = ? AND category_icon = ?", user.ID, "Dining", "🍜").Count(&renamed)
	if stale != 0 {
		t.Errorf("transactions still under old name: %d", stale)
	}
	if renamed != 2 {
		t.Errorf("renamed transactions = %d, want 2", renamed)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	_, err := UpdateCategory(user.ID, "Nope", CategoryInput{Name: "Whatever", Type: models.TypeExpense})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestDeleteCategoryKeepsTransactions(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")
	now := date(2025, 3, 1)
	mustCreateCategory(t, user.ID, "Food", models.TypeExpense, "500", models.BudgetMonthly, now)
	mustRecord(t, user.ID, "Food", models.TypeExpense, "50", date(2025, 3, 10))

	if err := DeleteCategory(user.ID, "Food", models.TypeExpense); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := DeleteCategory(user.ID, "Food", models.TypeExpense); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("second delete err = %v, want ErrCategoryNotFound", err)
	}

	// Snapshotted rows survive the category.
	var count int64
	db.Model(&models.Transaction{}).Where("user_id = ? AND category = ?", user.ID, "Food").Count(&count)
	if count != 1 {
		t.Errorf("transactions = %d, want 1", count)
	}
}
