package main

import (
	"time"

	"betrack/models"

	"github.com/shopspring/decimal"
)

// HistoryPoint is one bucket of the dashboard series. For a month timeframe
// the bucket is a day; for a year timeframe it is a (zero-based) month.
type HistoryPoint struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Day     int             `json:"day,omitempty"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// HistoryPeriods lists the years the owner has any recorded history for,
// ascending. An owner with no transactions gets the current year so the UI
// always has something to select.
func HistoryPeriods(userID uint) ([]int, error) {
	var years []int
	err := db.Model(&models.MonthHistory{}).
		Where("user_id = ?", userID).
		Distinct("year").Order("year asc").Pluck("year", &years).Error
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		years = []int{time.Now().UTC().Year()}
	}
	return years, nil
}

// HistoryData returns the income/expense series for one period, gap-filled
// with zero buckets so charts get a dense series. timeframe is "month"
// (per-day buckets of year+month) or "year" (per-month buckets of year);
// month is zero-based.
func HistoryData(userID uint, timeframe string, year, month int) ([]HistoryPoint, error) {
	switch timeframe {
	case "year":
		var rows []models.YearHistory
		err := db.Where("user_id = ? AND year = ?", userID, year).Order("month asc").Find(&rows).Error
		if err != nil {
			return nil, err
		}
		byMonth := map[int]models.YearHistory{}
		for _, r := range rows {
			byMonth[r.Month] = r
		}
		out := make([]HistoryPoint, 0, 12)
		for m := 0; m < 12; m++ {
			p := HistoryPoint{Year: year, Month: m, Income: decimal.Zero, Expense: decimal.Zero}
			if r, ok := byMonth[m]; ok {
				p.Income, p.Expense = r.Income, r.Expense
			}
			out = append(out, p)
		}
		return out, nil
	case "month":
		var rows []models.MonthHistory
		err := db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).Order("day asc").Find(&rows).Error
		if err != nil {
			return nil, err
		}
		byDay := map[int]models.MonthHistory{}
		for _, r := range rows {
			byDay[r.Day] = r
		}
		days := daysInMonth(year, month)
		out := make([]HistoryPoint, 0, days)
		for d := 1; d <= days; d++ {
			p := HistoryPoint{Year: year, Month: month, Day: d, Income: decimal.Zero, Expense: decimal.Zero}
			if r, ok := byDay[d]; ok {
				p.Income, p.Expense = r.Income, r.Expense
			}
			out = append(out, p)
		}
		return out, nil
	}
	verr := newValidationError()
	verr.add("timeframe", "must be month or year")
	return nil, verr
}

// daysInMonth for a zero-based month.
func daysInMonth(year, month int) int {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// BalanceStats sums the owner's income and expense transactions in an
// inclusive date range. Computed from the transactions table, not the
// rollups, so it stays correct even if a rollup row were ever repaired.
func BalanceStats(userID uint, from, to time.Time) (income, expense decimal.Decimal, err error) {
	from, to = utcDate(from), utcDate(to)
	type row struct {
		Type  string
		Total decimal.Decimal
	}
	var rows []row
	err = db.Model(&models.Transaction{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Group("type").Scan(&rows).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	income, expense = decimal.Zero, decimal.Zero
	for _, r := range rows {
		switch r.Type {
		case models.TypeIncome:
			income = r.Total
		case models.TypeExpense:
			expense = r.Total
		}
	}
	return income, expense, nil
}
