package main

import (
	"log/slog"
	"time"

	"betrack/models"

	"github.com/shopspring/decimal"
)

// SweepFailure describes one category the sweep could not reset.
type SweepFailure struct {
	UserID   uint   `json:"userId"`
	Category string `json:"category"`
	Error    string `json:"error"`
}

// SweepReport is the outcome of one ResetDueBudgets run. Individual failures
// are reported here (and logged) instead of aborting the sweep.
type SweepReport struct {
	Scanned  int            `json:"scanned"`
	Reset    int            `json:"reset"`
	Failures []SweepFailure `json:"failures,omitempty"`
}

// budgetDue reports whether a budget period has rolled over since lastReset.
// Monthly budgets are due on any (month, year) change, yearly ones on a year
// change. Comparisons are in UTC like the rest of the date handling.
func budgetDue(budgetType string, lastReset, now time.Time) bool {
	lr, n := lastReset.UTC(), now.UTC()
	if budgetType == models.BudgetYearly {
		return lr.Year() != n.Year()
	}
	return lr.Month() != n.Month() || lr.Year() != n.Year()
}

// ResetDueBudgets scans every expense category with a budget, across all
// owners, and zeroes the used counter where the period has rolled over.
// Each category is reset independently: one failure never blocks the rest,
// and running the sweep again within the same period is a no-op because
// lastReset has already advanced past the boundary.
func ResetDueBudgets(now time.Time) (SweepReport, error) {
	var cats []models.Category
	if err := db.Where("type = ? AND budget IS NOT NULL", models.TypeExpense).Find(&cats).Error; err != nil {
		return SweepReport{}, err
	}
	rep := SweepReport{Scanned: len(cats)}
	for i := range cats {
		cat := &cats[i]
		if cat.LastReset == nil {
			// creation always sets lastReset; skip rows that predate that
			continue
		}
		budgetType := models.BudgetMonthly
		if cat.BudgetType != nil {
			budgetType = *cat.BudgetType
		}
		if !budgetDue(budgetType, *cat.LastReset, now) {
			continue
		}
		if err := resetCategory(cat, now); err != nil {
			slog.Error("budget reset failed", "user", cat.UserID, "category", cat.Name, "err", err)
			rep.Failures = append(rep.Failures, SweepFailure{UserID: cat.UserID, Category: cat.Name, Error: err.Error()})
			continue
		}
		rep.Reset++
		budgetsReset.Inc()
	}
	if rep.Reset > 0 || len(rep.Failures) > 0 {
		slog.Info("budget sweep finished", "scanned", rep.Scanned, "reset", rep.Reset, "failed", len(rep.Failures))
	}
	return rep, nil
}

// resetCategory applies one reset as a compare-and-swap on last_reset: the
// update only lands if last_reset still holds the value this sweep read, so
// a racing sweep cannot apply the same rollover twice or trample a reset the
// other sweep already performed. Zero rows affected means the race was lost
// and the reset is already done.
func resetCategory(cat *models.Category, now time.Time) error {
	res := db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ? AND last_reset = ?", cat.UserID, cat.Name, cat.Type, *cat.LastReset).
		Updates(map[string]interface{}{"used": decimal.Zero, "last_reset": now.UTC()})
	return res.Error
}
