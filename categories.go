package main

import (
	"errors"
	"time"

	"betrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name       string
	Icon       string
	Type       string
	Budget     *decimal.Decimal
	BudgetType *string
}

func (in *CategoryInput) validate() *ValidationError {
	verr := newValidationError()
	if len(in.Name) < 3 || len(in.Name) > 20 {
		verr.add("name", "must be 3-20 characters")
	}
	if len(in.Icon) > 20 {
		verr.add("icon", "too long (max 20)")
	}
	if in.Type != models.TypeIncome && in.Type != models.TypeExpense {
		verr.add("type", "must be income or expense")
	}
	// Budget and budgetType come as a pair or not at all.
	if in.Budget != nil && in.BudgetType == nil {
		verr.add("budgetType", "required when budget is set")
	}
	if in.BudgetType != nil {
		if in.Budget == nil {
			verr.add("budget", "required when budgetType is set")
		}
		if *in.BudgetType != models.BudgetMonthly && *in.BudgetType != models.BudgetYearly {
			verr.add("budgetType", "must be monthly or yearly")
		}
	}
	if in.Budget != nil && !in.Budget.IsPositive() {
		verr.add("budget", "must be a positive number")
	}
	return verr.orNil()
}

// CreateCategory creates a category for the owner. Expense categories start
// budget accounting immediately: used = 0 and lastReset = now. Income
// categories keep all budget fields NULL whatever the input carried.
func CreateCategory(userID uint, in CategoryInput, now time.Time) (*models.Category, error) {
	if verr := in.validate(); verr != nil {
		return nil, verr
	}
	cat := models.Category{
		UserID: userID,
		Name:   in.Name,
		Icon:   in.Icon,
		Type:   in.Type,
	}
	if in.Type == models.TypeExpense {
		zero := decimal.Zero
		reset := now.UTC()
		cat.Budget = in.Budget
		cat.BudgetType = in.BudgetType
		cat.Used = &zero
		cat.LastReset = &reset
	}
	if err := db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory updates the category identified by (oldName, owner, type)
// and rewrites the denormalized name/icon on every matching transaction in
// the same DB transaction, so readers never observe a half-applied rename.
func UpdateCategory(userID uint, oldName string, in CategoryInput) (*models.Category, error) {
	if verr := in.validate(); verr != nil {
		return nil, verr
	}
	if oldName == "" {
		oldName = in.Name
	}
	var cat models.Category
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND name = ? AND type = ?", userID, oldName, in.Type).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		updates := map[string]interface{}{
			"name": in.Name,
			"icon": in.Icon,
		}
		if in.Type == models.TypeExpense {
			updates["budget"] = in.Budget
			updates["budget_type"] = in.BudgetType
		}
		if err := tx.Model(&models.Category{}).Where("id = ?", cat.ID).Updates(updates).Error; err != nil {
			return err
		}
		// Cascade the new label onto existing transactions; they are linked
		// by name only.
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND category = ? AND type = ?", userID, oldName, in.Type).
			Updates(map[string]interface{}{"category": in.Name, "category_icon": in.Icon}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", cat.ID).First(&cat).Error
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes the category row. Transactions referencing it are
// left untouched and keep the snapshotted name/icon.
func DeleteCategory(userID uint, name, categoryType string) error {
	res := db.Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).
		Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
