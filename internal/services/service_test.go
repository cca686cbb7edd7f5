package services

import (
	"log"
	"os"
	"testing"

	"settlement-service/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NOTE: These tests require a running MySQL instance.
// For this environment, we will write them to be ready for integration testing.
// In a real CI, we would spin up a container.

var testDB *gorm.DB

func setup() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("Skipping DB tests: DATABASE_URL not set")
		return
	}

	var err error
	testDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return
	}

	// Migrate schemas
	testDB.AutoMigrate(
		&models.Admin{},
		&models.AdAccount{},
		&models.Wallet{},
		&models.FinancialRequest{},
		&models.Proof{},
		&models.LedgerEntry{},
		&models.Notification{},
		&models.ArchivedRequest{},
	)
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM proofs")
		testDB.Exec("DELETE FROM ledger_entries")
		testDB.Exec("DELETE FROM notifications")
		testDB.Exec("DELETE FROM financial_requests")
		testDB.Exec("DELETE FROM archived_requests")
		testDB.Exec("DELETE FROM wallets")
		testDB.Exec("DELETE FROM ad_accounts")
		testDB.Exec("DELETE FROM admins")
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func seedAdmin(t *testing.T, id int, username string, super bool) {
	t.Helper()
	if err := testDB.Create(&models.Admin{ID: id, Username: username, IsSuperAdmin: super}).Error; err != nil {
		t.Fatalf("Failed to seed admin %s: %v", username, err)
	}
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}
