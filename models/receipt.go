package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt records an uploaded receipt image and whatever the OCR pass managed
// to extract from it. Extraction output is advisory only: creating the actual
// transaction goes through the normal validation path, after which
// TransactionID links back here.
type Receipt struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint   `gorm:"index;not null;uniqueIndex:idx_receipt_owner_file"`
	FileName    string `gorm:"size:255;not null;uniqueIndex:idx_receipt_owner_file"`
	StorePath   string `gorm:"column:store_path;size:512"`
	ContentType string `gorm:"size:128"`
	// Extracted fields; null/empty when the pass found nothing usable.
	Amount     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Date       *time.Time
	Merchant   string `gorm:"size:128"`
	Suggestion string  `gorm:"size:64"` // suggested category name, may be NEW_CATEGORY_NEEDED
	Confidence float64 `gorm:"default:0"`
	// Set once a transaction is created from this receipt.
	TransactionID *uint `gorm:"index"`
	// Mark extraction failures instead of deleting the record so they can be reviewed.
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
