package database

import (
	"wattmarket-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers
// (e.g. PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate creates the marketplace tables. Unique indexes and the
// ON DELETE CASCADE foreign keys come from the model tags.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Contract{},
		&models.User{},
		&models.Portfolio{},
		&models.PortfolioHolding{},
	)
}
