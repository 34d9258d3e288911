package service

import (
	"context"
	"testing"

	"github.com/annadaan/annadaan-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatsEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	stats, err := NewStatsService(db).Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalDonations)
	assert.Equal(t, int64(0), stats.PlatesServed)
	assert.Equal(t, int64(0), stats.ValueINR)
	assert.Equal(t, int64(0), stats.FoodSavedKg)
	assert.Equal(t, int64(0), stats.PeopleFed)
	assert.Equal(t, int64(0), stats.VolunteersInvolved)

	// The fuel figure is fixed, data or no data.
	assert.Equal(t, int64(450), stats.FuelSavedLiters)
}

func TestComputeStatsAggregates(t *testing.T) {
	db := setupTestDB(t)
	donor := createTestUser(t, db, models.UserTypeEventDonor, "donor@example.com")
	ngo := createTestUser(t, db, models.UserTypeNgo, "ngo@example.com")
	createTestUser(t, db, models.UserTypeVolunteer, "v1@example.com")
	createTestUser(t, db, models.UserTypeVolunteer, "v2@example.com")
	donations := NewDonationService(db)

	// 35 kg -> 140 plates, 35 kg saved.
	createTestDonation(t, db, donor.ID, 35, "kg")
	// 200 plates -> 200 plates, 50 kg saved.
	createTestDonation(t, db, donor.ID, 200, "plates")
	// 40 liters -> 120 plates, 40 "kg" saved (liters pass through raw).
	claimed := createTestDonation(t, db, donor.ID, 40, "liters")

	// Claiming does not change the aggregate; every donation counts.
	_, err := donations.Request(claimed.ID, ngo.ID)
	require.NoError(t, err)

	stats, err := NewStatsService(db).Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalDonations)
	assert.Equal(t, int64(460), stats.PlatesServed)
	assert.Equal(t, int64(46000), stats.ValueINR)
	assert.Equal(t, int64(125), stats.FoodSavedKg)
	assert.Equal(t, int64(460), stats.PeopleFed)
	assert.Equal(t, int64(2), stats.VolunteersInvolved)
	assert.Equal(t, int64(450), stats.FuelSavedLiters)
}

func TestComputeStatsCountsOnlyPrimaryItem(t *testing.T) {
	db := setupTestDB(t)
	donor := createTestUser(t, db, models.UserTypeEventDonor, "donor@example.com")

	donation := createTestDonation(t, db, donor.ID, 10, "kg")

	// A secondary item on the same donation stays out of the mass figure.
	require.NoError(t, db.Create(&models.FoodItem{
		DonationID: donation.ID,
		Position:   1,
		ItemName:   "Gulab Jamun",
		Quantity:   100,
		Unit:       "kg",
	}).Error)

	stats, err := NewStatsService(db).Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.FoodSavedKg)
}
