// Package testdb opens migrated in-memory databases for tests.
package testdb

import (
	"testing"

	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/config"
	"invoice-dashboard-backend/internal/models"
)

// Open returns an empty in-memory SQLite database. Pass migrate=false to get
// a database without tables.
func Open(t testing.TB, migrate bool) *gorm.DB {
	t.Helper()

	db, err := config.InitDB(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: config.MemoryDB,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })

	if migrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			t.Fatalf("migrate test db: %v", err)
		}
	}
	return db
}

// Customer inserts a customer row with the given id.
func Customer(t testing.TB, db *gorm.DB, id, name string) *models.Customer {
	t.Helper()

	c := &models.Customer{
		ID:       id,
		Name:     name,
		Email:    id + "@example.com",
		ImageURL: "/customers/" + id + ".png",
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return c
}
