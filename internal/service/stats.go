package service

import (
	"context"
	"math"

	"github.com/annadaan/annadaan-backend/internal/models"
	"gorm.io/gorm"
)

// fuelSavedLiters is the fixed figure the original dashboard ships; it has
// never been derived from the data.
const fuelSavedLiters = 450

// ImpactStats is the platform-wide aggregate served at /api/stats.
type ImpactStats struct {
	TotalDonations     int64 `json:"total_donations"`
	PlatesServed       int64 `json:"plates_served"`
	ValueINR           int64 `json:"value_inr"`
	FoodSavedKg        int64 `json:"food_saved_kg"`
	FuelSavedLiters    int64 `json:"fuel_saved_liters"`
	PeopleFed          int64 `json:"people_fed"`
	VolunteersInvolved int64 `json:"volunteers_involved"`
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Compute aggregates the donation collection in SQL. The seeders go up to a
// million records, so nothing here loads rows into memory. Plates and value
// sum over every donation regardless of status, unclaimed ones included.
func (s *StatsService) Compute(ctx context.Context) (*ImpactStats, error) {
	var totals struct {
		TotalDonations int64
		PlatesServed   int64
		ValueINR       int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Donation{}).
		Select("COUNT(*) AS total_donations, " +
			"COALESCE(SUM(total_plates), 0) AS plates_served, " +
			"COALESCE(SUM(estimated_value_inr), 0) AS value_inr").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	// Food mass heuristic from the original dashboard: kg counts as-is,
	// plates convert at 0.25 kg each, liters and pieces pass through raw.
	var foodSavedKg float64
	if err := s.db.WithContext(ctx).Model(&models.Donation{}).
		Joins("JOIN food_items ON food_items.donation_id = donations.id AND food_items.position = 0").
		Select("COALESCE(SUM(CASE food_items.unit " +
			"WHEN 'kg' THEN food_items.quantity " +
			"WHEN 'plates' THEN food_items.quantity * 0.25 " +
			"ELSE food_items.quantity END), 0)").
		Scan(&foodSavedKg).Error; err != nil {
		return nil, err
	}

	var volunteers int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_type = ?", models.UserTypeVolunteer).
		Count(&volunteers).Error; err != nil {
		return nil, err
	}

	return &ImpactStats{
		TotalDonations:     totals.TotalDonations,
		PlatesServed:       totals.PlatesServed,
		ValueINR:           totals.ValueINR,
		FoodSavedKg:        int64(math.Round(foodSavedKg)),
		FuelSavedLiters:    fuelSavedLiters,
		PeopleFed:          totals.PlatesServed,
		VolunteersInvolved: volunteers,
	}, nil
}
