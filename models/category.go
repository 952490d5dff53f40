package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction/category type labels. Stored as plain strings, validated at the edges.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Budget period labels.
const (
	BudgetMonthly = "monthly"
	BudgetYearly  = "yearly"
)

// Category is identified by (name, owner, type): the same name may exist for
// two owners, or as both an income and an expense category of one owner.
// Budget, BudgetType, Used and LastReset are only ever set on expense
// categories; for income categories all four stay NULL.
type Category struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"not null;uniqueIndex:idx_category_owner"`
	Name      string `gorm:"size:64;not null;uniqueIndex:idx_category_owner"`
	Type      string `gorm:"size:16;not null;uniqueIndex:idx_category_owner"`
	Icon      string `gorm:"size:32"`
	// Budget and BudgetType are set together or not at all.
	Budget     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	BudgetType *string          `gorm:"size:16"`
	// Used is the fast-path spending counter for the current budget period.
	// It is advisory: the budget stats query recomputes usage from the
	// transactions table and is the canonical view.
	Used      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	LastReset *time.Time
}

// HasBudget reports whether this category participates in budget accounting.
func (c *Category) HasBudget() bool {
	return c.Type == TypeExpense && c.Budget != nil
}
