package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/annadaan/annadaan-backend/internal/models"
	"github.com/annadaan/annadaan-backend/internal/service"
	"github.com/annadaan/annadaan-backend/internal/services"
	"github.com/annadaan/annadaan-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// GetDonations lists donations, newest first, with optional filters.
func GetDonations(donations *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := service.DonationFilter{Status: c.Query("status")}

		for query, target := range map[string]*uint{
			"event_donor_id": &filter.EventDonorID,
			"ngo_id":         &filter.NgoID,
			"volunteer_id":   &filter.VolunteerID,
		} {
			value := c.Query(query)
			if value == "" {
				continue
			}
			id, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid " + query})
				return
			}
			*target = uint(id)
		}

		list, err := donations.List(filter)
		if err != nil {
			log.Printf("Error fetching donations: %v", err)
			c.JSON(500, gin.H{"error": "Failed to fetch donations"})
			return
		}

		c.JSON(200, list)
	}
}

// GetDonation retrieves a single donation with its food items.
func GetDonation(donations *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid donation ID"})
			return
		}

		donation, err := donations.Get(uint(id))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(404, gin.H{"error": "Donation not found"})
				return
			}
			log.Printf("Error fetching donation: %v", err)
			c.JSON(500, gin.H{"error": "Failed to fetch donation"})
			return
		}

		c.JSON(200, donation)
	}
}

type CreateDonationInput struct {
	EventDonorID        uint      `json:"event_donor_id"`
	ItemName            string    `json:"item_name" binding:"required"`
	Quantity            float64   `json:"quantity" binding:"required"`
	Unit                string    `json:"unit" binding:"required"`
	Category            string    `json:"category" binding:"required"`
	DietaryInfo         []string  `json:"dietary_info"`
	ExpiryDate          time.Time `json:"expiry_date" binding:"required"`
	PickupTime          time.Time `json:"pickup_time" binding:"required"`
	Priority            string    `json:"priority"`
	SpecialInstructions string    `json:"special_instructions"`
}

// CreateDonation records a new donation offer. The server derives plates,
// value and the tracking code; the client never computes them.
func CreateDonation(donations *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString("userType")
		if userType != string(models.UserTypeEventDonor) {
			c.JSON(403, gin.H{"error": "Only event donors can create donations"})
			return
		}

		var input CreateDonationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		donorID := input.EventDonorID
		if donorID == 0 {
			donorID = c.GetUint("userId")
		}

		donation, err := donations.Create(service.CreateDonationInput{
			EventDonorID:        donorID,
			ItemName:            input.ItemName,
			Quantity:            input.Quantity,
			Unit:                input.Unit,
			Category:            input.Category,
			DietaryInfo:         input.DietaryInfo,
			ExpiryDate:          input.ExpiryDate,
			PickupTime:          input.PickupTime,
			Priority:            input.Priority,
			SpecialInstructions: input.SpecialInstructions,
		})
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrInvalidQuantity):
				c.JSON(400, gin.H{"error": "Quantity must be greater than zero"})
			case errors.Is(err, service.ErrNotFound):
				c.JSON(404, gin.H{"error": "Donor not found"})
			default:
				log.Printf("Error creating donation: %v", err)
				c.JSON(500, gin.H{"error": "Failed to create donation"})
			}
			return
		}

		c.JSON(201, gin.H{"success": true, "donation": donation})
	}
}

// RequestDonation lets an NGO claim a ready donation. At most one
// organization wins; later claimants get a conflict.
func RequestDonation(donations *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString("userType")
		if userType != string(models.UserTypeNgo) {
			c.JSON(403, gin.H{"error": "Only NGOs can request donations"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid donation ID"})
			return
		}

		donation, err := donations.Request(uint(id), c.GetUint("userId"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				c.JSON(404, gin.H{"error": "Donation not found"})
			case errors.Is(err, service.ErrAlreadyClaimed):
				c.JSON(409, gin.H{"error": "Donation has already been claimed"})
			default:
				log.Printf("Error requesting donation: %v", err)
				c.JSON(500, gin.H{"error": "Failed to request donation"})
			}
			return
		}

		c.JSON(200, gin.H{"success": true, "donation": donation})
	}
}

// AcceptPickup lets a volunteer take over delivery of a claimed donation.
func AcceptPickup(donations *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString("userType")
		if userType != string(models.UserTypeVolunteer) {
			c.JSON(403, gin.H{"error": "Only volunteers can accept pickups"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid donation ID"})
			return
		}

		volunteerID := c.GetUint("userId")
		donation, err := donations.AcceptPickup(uint(id), volunteerID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				c.JSON(404, gin.H{"error": "Donation not found"})
			case errors.Is(err, service.ErrAlreadyAssigned):
				c.JSON(409, gin.H{"error": "Donation already has a volunteer"})
			default:
				log.Printf("Error accepting pickup: %v", err)
				c.JSON(500, gin.H{"error": "Failed to accept pickup"})
			}
			return
		}

		if err := services.SetVolunteerAvailability(context.Background(), volunteerID, false); err != nil {
			log.Printf("Failed to update volunteer availability: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "donation": donation})
	}
}

type UpdateDonationInput struct {
	NgoID       *uint   `json:"ngo_id"`
	VolunteerID *uint   `json:"volunteer_id"`
	Status      *string `json:"status"`
}

// UpdateDonation is the generic PATCH surface the web client uses. Claim
// fields go through the same conditional updates as the dedicated routes,
// so the at-most-one-claimant rule holds here too.
func UpdateDonation(donations *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid donation ID"})
			return
		}
		id := uint(id64)

		var input UpdateDonationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var donation *models.Donation

		if input.NgoID != nil {
			donation, err = donations.Request(id, *input.NgoID)
			if handled := respondDonationError(c, err, "claim"); handled {
				return
			}
		}

		if input.VolunteerID != nil {
			donation, err = donations.AcceptPickup(id, *input.VolunteerID)
			if handled := respondDonationError(c, err, "assign"); handled {
				return
			}
		}

		if input.Status != nil {
			donation, err = donations.UpdateStatus(id, *input.Status)
			if handled := respondDonationError(c, err, "update"); handled {
				return
			}

			delivered := *input.Status == models.StatusDelivered || *input.Status == models.StatusCompleted
			if delivered && donation.VolunteerID != nil {
				if err := services.SetVolunteerAvailability(context.Background(), *donation.VolunteerID, true); err != nil {
					log.Printf("Failed to update volunteer availability: %v", err)
				}
			}
		}

		if donation == nil {
			// Empty patch; return the current record like the original did.
			donation, err = donations.Get(id)
			if handled := respondDonationError(c, err, "fetch"); handled {
				return
			}
		}

		c.JSON(200, gin.H{"success": true, "donation": donation})
	}
}

func respondDonationError(c *gin.Context, err error, action string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(404, gin.H{"error": "Donation not found"})
	case errors.Is(err, service.ErrAlreadyClaimed):
		c.JSON(409, gin.H{"error": "Donation has already been claimed"})
	case errors.Is(err, service.ErrAlreadyAssigned):
		c.JSON(409, gin.H{"error": "Donation already has a volunteer"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(400, gin.H{"error": "Invalid donation status"})
	default:
		log.Printf("Error during donation %s: %v", action, err)
		c.JSON(500, gin.H{"error": "Failed to update donation"})
	}
	return true
}

// UploadDonationPhoto stores a photo of the donated food and records its URL.
func UploadDonationPhoto(donations *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid donation ID"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"error": "Photo file is required"})
			return
		}

		url, err := services.UploadImage(file, "donations")
		if err != nil {
			log.Printf("Error uploading donation photo: %v", err)
			c.JSON(500, gin.H{"error": "Failed to upload photo"})
			return
		}

		donation, err := donations.AttachPhoto(uint(id), url)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(404, gin.H{"error": "Donation not found"})
				return
			}
			log.Printf("Error attaching donation photo: %v", err)
			c.JSON(500, gin.H{"error": "Failed to update donation"})
			return
		}

		c.JSON(200, gin.H{"success": true, "photo_url": url, "donation": donation})
	}
}
