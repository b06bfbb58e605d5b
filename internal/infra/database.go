package infra

import (
	"fmt"

	"github.com/Fineboy94449/smoke/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for all entities.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Operator{},
		&model.Customer{},
		&model.Debtor{},
		&model.Sale{},
		&model.Payment{},
		&model.PointHistory{},
		&model.StockEntry{},
		&model.Order{},
		&model.OrderItem{},
		&model.Expense{},
		&model.Injection{},
		&model.Settings{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
