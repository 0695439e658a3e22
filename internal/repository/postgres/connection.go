package postgres

import (
	"github.com/freshtrack/freshtrack/internal/domain"
	"github.com/freshtrack/freshtrack/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(db),
		Product: NewProductRepository(db),
	}
}
