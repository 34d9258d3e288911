package service

import (
	"errors"
	"time"

	"github.com/annadaan/annadaan-backend/internal/models"
	"github.com/annadaan/annadaan-backend/pkg/utils"
	"gorm.io/gorm"
)

// maxTrackingAttempts bounds the generate-then-verify loop for tracking ids.
const maxTrackingAttempts = 5

type DonationService struct {
	db *gorm.DB
}

func NewDonationService(db *gorm.DB) *DonationService {
	return &DonationService{db: db}
}

type CreateDonationInput struct {
	EventDonorID        uint
	ItemName            string
	Quantity            float64
	Unit                string
	Category            string
	DietaryInfo         []string
	ExpiryDate          time.Time
	PickupTime          time.Time
	Priority            string
	SpecialInstructions string
}

// Create records a new donation in the ready state. Plates and value are
// derived once from the primary food item and never recomputed.
func (s *DonationService) Create(input CreateDonationInput) (*models.Donation, error) {
	var donor models.User
	if err := s.db.Where("id = ? AND user_type = ?", input.EventDonorID, models.UserTypeEventDonor).
		First(&donor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	totalPlates, valueINR, err := utils.NormalizePlates(input.Quantity, input.Unit)
	if err != nil {
		return nil, err
	}

	trackingID, err := s.uniqueTrackingID()
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	donation := models.Donation{
		EventDonorID: input.EventDonorID,
		FoodItems: []models.FoodItem{{
			Position:        0,
			ItemName:        input.ItemName,
			Quantity:        input.Quantity,
			Unit:            input.Unit,
			Category:        input.Category,
			DietaryInfo:     input.DietaryInfo,
			ExpiryDate:      input.ExpiryDate,
			PreparationDate: time.Now(),
		}},
		TotalPlates:         totalPlates,
		EstimatedValueINR:   valueINR,
		DonationDate:        time.Now(),
		PickupTime:          input.PickupTime,
		Status:              models.StatusReady,
		Priority:            priority,
		SpecialInstructions: input.SpecialInstructions,
		DeliveryMethod:      "pickup",
		TrackingID:          trackingID,
	}

	if err := s.db.Create(&donation).Error; err != nil {
		return nil, err
	}

	return &donation, nil
}

// uniqueTrackingID generates a tracking code and verifies it against the
// store, retrying a bounded number of times before giving up.
func (s *DonationService) uniqueTrackingID() (string, error) {
	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		candidate, err := utils.GenerateTrackingID()
		if err != nil {
			return "", err
		}

		var count int64
		if err := s.db.Model(&models.Donation{}).
			Where("tracking_id = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", ErrTrackingCollision
}

// Request claims a donation for an organization. The update only succeeds
// while ngo_id is still unset, so two concurrent claimants cannot overwrite
// each other; the loser gets ErrAlreadyClaimed.
func (s *DonationService) Request(donationID, ngoID uint) (*models.Donation, error) {
	res := s.db.Model(&models.Donation{}).
		Where("id = ? AND ngo_id IS NULL", donationID).
		Updates(map[string]interface{}{
			"ngo_id": ngoID,
			"status": models.StatusInTransit,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(donationID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyClaimed
	}

	return s.Get(donationID)
}

// AcceptPickup assigns a volunteer to a claimed donation. Same conditional
// update as Request; the status label stays at in-transit.
func (s *DonationService) AcceptPickup(donationID, volunteerID uint) (*models.Donation, error) {
	res := s.db.Model(&models.Donation{}).
		Where("id = ? AND volunteer_id IS NULL", donationID).
		Updates(map[string]interface{}{
			"volunteer_id": volunteerID,
			"status":       models.StatusInTransit,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(donationID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyAssigned
	}

	return s.Get(donationID)
}

// UpdateStatus sets the donation status directly; this is how delivered,
// cancelled and the legacy labels are reached. Marking a donation delivered
// credits the assigned volunteer's lifetime delivery counter.
func (s *DonationService) UpdateStatus(donationID uint, status string) (*models.Donation, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	donation, err := s.Get(donationID)
	if err != nil {
		return nil, err
	}

	alreadyDelivered := donation.Status == models.StatusDelivered || donation.Status == models.StatusCompleted
	nowDelivered := status == models.StatusDelivered || status == models.StatusCompleted

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Donation{}).
			Where("id = ?", donationID).
			Update("status", status).Error; err != nil {
			return err
		}

		if nowDelivered && !alreadyDelivered && donation.VolunteerID != nil {
			if err := tx.Model(&models.VolunteerProfile{}).
				Where("user_id = ?", *donation.VolunteerID).
				Update("total_deliveries", gorm.Expr("total_deliveries + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(donationID)
}

// DonationFilter narrows List; zero values mean "no constraint".
type DonationFilter struct {
	Status       string
	EventDonorID uint
	NgoID        uint
	VolunteerID  uint
}

// List returns matching donations, newest first, food items in order.
func (s *DonationService) List(filter DonationFilter) ([]models.Donation, error) {
	query := s.db.Preload("FoodItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EventDonorID != 0 {
		query = query.Where("event_donor_id = ?", filter.EventDonorID)
	}
	if filter.NgoID != 0 {
		query = query.Where("ngo_id = ?", filter.NgoID)
	}
	if filter.VolunteerID != 0 {
		query = query.Where("volunteer_id = ?", filter.VolunteerID)
	}

	var donations []models.Donation
	if err := query.Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (s *DonationService) Get(id uint) (*models.Donation, error) {
	var donation models.Donation
	if err := s.db.Preload("FoodItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&donation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// AttachPhoto records the uploaded photo URL on a donation.
func (s *DonationService) AttachPhoto(donationID uint, url string) (*models.Donation, error) {
	res := s.db.Model(&models.Donation{}).
		Where("id = ?", donationID).
		Update("photo_url", url)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(donationID)
}
