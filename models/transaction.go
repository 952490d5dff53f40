package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense entry. Category and CategoryIcon
// are copied from the owning category at creation time; there is no foreign
// key, so a category rename rewrites matching rows explicitly and a deleted
// category leaves its transactions behind with the stale name.
type Transaction struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint            `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date        time.Time       `gorm:"index;not null"` // calendar date, bucketed by UTC day
	Description string          `gorm:"size:255"`
	Type        string          `gorm:"size:16;not null"`
	Category    string          `gorm:"size:64;not null;index:idx_tx_category"`
	// CategoryIcon rides along so listings don't need a category lookup.
	CategoryIcon string `gorm:"size:32"`
}
