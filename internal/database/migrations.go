package database

import (
	"github.com/annadaan/annadaan-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.DonorProfile{},
		&models.NgoProfile{},
		&models.VolunteerProfile{},
		&models.Donation{},
		&models.FoodItem{},
	)
	if err != nil {
		return err
	}

	// Constrain the role tag to the three platform roles
	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_user_type_check`)
		if err := db.Exec(`ALTER TABLE users ADD CONSTRAINT users_user_type_check CHECK (user_type IN ('event_donor', 'ngo', 'volunteer'))`).Error; err != nil {
			return err
		}
	}

	// The donation list is always served newest first; the stats scan joins
	// on the primary food item. Both need their indexes at seed scale.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_donations_created_at ON donations (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_donations_status_created_at ON donations (status, created_at DESC)`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
