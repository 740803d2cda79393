package testutil

import (
	"testing"

	"seguimiento-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB abre una base SQLite en memoria con el esquema completo
// migrado. Cada test obtiene su propia base aislada.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Location{},
		&models.Task{},
		&models.Improvement{},
		&models.Metric{},
		&models.WeeklyReport{},
		&models.MonthlyReport{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}
