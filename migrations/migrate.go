package main

import (
	"os"
	"reports/src/config"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.Fatalf("Error loading config for environment: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Databases.SQL.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		logrus.Fatalf("Failed to set dialect: %v", err)
	}
	if err := goose.Up(sqlDB, "./migrations"); err != nil {
		logrus.Fatalf("Failed to apply migrations: %v", err)
	}

	logrus.Info("Database migration completed successfully")
}
