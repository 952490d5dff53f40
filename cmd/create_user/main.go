package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"betrack/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Starter categories every new account gets; budgets can be edited later.
var starterCategories = []struct {
	name, icon, catType string
	budget              string
	budgetType          string
}{
	{"Groceries", "🛒", models.TypeExpense, "500", models.BudgetMonthly},
	{"Dining", "🍜", models.TypeExpense, "200", models.BudgetMonthly},
	{"Transport", "🚌", models.TypeExpense, "", ""},
	{"Salary", "💰", models.TypeIncome, "", ""},
}

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <username> <password>")
		os.Exit(2)
	}
	username := os.Args[1]
	password := os.Args[2]

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	// ensure roles exist
	var role models.Role
	if err := db.Where("name = ?", "user").First(&role).Error; err != nil {
		role = models.Role{Name: "user", Description: "regular user"}
		db.Create(&role)
	}

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", username, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	rid := role.ID
	user := models.User{Username: username, HashedPassword: hpw, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	now := time.Now().UTC()
	for _, sc := range starterCategories {
		cat := models.Category{UserID: user.ID, Name: sc.name, Icon: sc.icon, Type: sc.catType}
		if sc.catType == models.TypeExpense {
			zero := decimal.Zero
			reset := now
			cat.Used = &zero
			cat.LastReset = &reset
			if sc.budget != "" {
				b := decimal.RequireFromString(sc.budget)
				bt := sc.budgetType
				cat.Budget = &b
				cat.BudgetType = &bt
			}
		}
		if err := db.Create(&cat).Error; err != nil {
			log.Printf("warning: failed to create category %s: %v", sc.name, err)
		}
	}
	fmt.Printf("created user %s id=%d with %d starter categories\n", username, user.ID, len(starterCategories))
}
