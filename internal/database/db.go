package database

import (
	"log"

	"seguimiento-backend/internal/config"
	"seguimiento-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	err = DB.AutoMigrate(
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
		log.Fatalf("AutoMigrate error: %v", err)
	}

	log.Println("Connected to the database, migration complete")
}
