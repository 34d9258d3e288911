package service

import (
	"testing"
	"time"

	"github.com/annadaan/annadaan-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database migrated with the full
// schema. Pinned to a single connection so every query sees the same store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.DonorProfile{},
		&models.NgoProfile{},
		&models.VolunteerProfile{},
		&models.Donation{},
		&models.FoodItem{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserType, email string) *models.User {
	t.Helper()

	user, err := NewUserService(db).Register(RegisterInput{
		Name:     "Test " + string(role),
		Email:    email,
		Password: "demo123",
		Phone:    "+91-9876543210",
		UserType: string(role),
	})
	require.NoError(t, err)
	return user
}

func createTestDonation(t *testing.T, db *gorm.DB, donorID uint, quantity float64, unit string) *models.Donation {
	t.Helper()

	donation, err := NewDonationService(db).Create(CreateDonationInput{
		EventDonorID: donorID,
		ItemName:     "Veg Biryani",
		Quantity:     quantity,
		Unit:         unit,
		Category:     "main_course",
		DietaryInfo:  []string{"veg"},
		ExpiryDate:   time.Now().Add(6 * time.Hour),
		PickupTime:   time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)
	return donation
}
