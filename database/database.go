package database

import (
	"fmt"

	"github.com/oakmeet/meetup_backend/config"
	"github.com/oakmeet/meetup_backend/logger"
	"github.com/oakmeet/meetup_backend/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect establishes a connection to the database
func Connect(cfg *config.Config) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}

	logger.L().Info("database connection established",
		zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
}

// Migrate automatically migrates the database schema
func Migrate() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Activity{},
		&models.ActivityParticipant{},
		&models.JoinRequest{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.Rating{},
		&models.Comment{},
		&models.IssueReport{},
	); err != nil {
		logger.L().Fatal("database migration failed", zap.Error(err))
	}
	logger.L().Info("database migration completed")
}
