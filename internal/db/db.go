package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/config"
	"github.com/keechi-app/keechi-api/internal/logger"
	"github.com/keechi-app/keechi-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.L().Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.L().Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Service{},
		&models.TeamMember{},
		&models.Appointment{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		logger.L().Fatal("failed to migrate", zap.Error(err))
	}

	return db
}
