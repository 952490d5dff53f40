package main

import (
	"log"
	"os"
	"strings"

	"betrack/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This service requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		autoMigrateAll(db)
	}
	seedDB()
}

// autoMigrateAll migrates models individually so a failure on one doesn't
// block the others. Roles go first so the users FK can be applied safely.
// Tests reuse this against their own sqlite handle.
func autoMigrateAll(g *gorm.DB) {
	for _, m := range []interface{}{
		&models.Role{},
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Transaction{},
		&models.MonthHistory{},
		&models.YearHistory{},
		&models.Receipt{},
	} {
		if err := g.AutoMigrate(m); err != nil {
			log.Printf("migration warning (%T): %v", m, err)
		}
	}
}

func seedDB() {
	// Ensure master roles exist
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}
	ensureReceiptBase()
}

// ensureReceiptBase creates the base directory for stored receipt images.
func ensureReceiptBase() {
	base := receiptBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		log.Printf("failed to create receipt base dir %s: %v", base, err)
	}
}

// receiptBaseDir returns the directory receipt uploads land in (configurable via RECEIPT_BASE env)
func receiptBaseDir() string {
	if v := os.Getenv("RECEIPT_BASE"); v != "" {
		return v
	}
	return "receipts"
}
