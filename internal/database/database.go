package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sweetshop/internal/models"
)

// New opens the postgres connection described by dsn.
func New(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate creates or updates the schema for every model the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Sweet{},
		&models.AuditEntry{},
	)
}
