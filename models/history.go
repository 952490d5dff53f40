package models

import "github.com/shopspring/decimal"

// MonthHistory is the per-day rollup of one owner's income and expense.
// Month is zero-based (January = 0) and day/month/year come from the
// transaction date in UTC. Rows are upserted with increment-only updates and
// never deleted.
type MonthHistory struct {
	UserID  uint            `gorm:"primaryKey;autoIncrement:false"`
	Day     int             `gorm:"primaryKey;autoIncrement:false"`
	Month   int             `gorm:"primaryKey;autoIncrement:false"`
	Year    int             `gorm:"primaryKey;autoIncrement:false"`
	Income  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Expense decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// YearHistory is the per-month rollup, keyed like MonthHistory minus the day.
type YearHistory struct {
	UserID  uint            `gorm:"primaryKey;autoIncrement:false"`
	Month   int             `gorm:"primaryKey;autoIncrement:false"`
	Year    int             `gorm:"primaryKey;autoIncrement:false"`
	Income  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Expense decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}
