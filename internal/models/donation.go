package models

import (
	"time"

	"gorm.io/gorm"
)

// Donation statuses are stored and served as the literal strings the
// original platform uses, including the Devanagari tokens. They must
// round-trip byte-for-byte through the database and the API.
const (
	StatusReady     = "तैयार है"  // ready for pickup
	StatusInTransit = "रास्ते में" // claimed by an NGO / out for delivery
	StatusDelivered = "पहुँच गया"  // delivered
	StatusCancelled = "रद्द"      // cancelled

	// Legacy status strings kept for backward compatibility.
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusAvailable = "available"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s belongs to the donation status enumeration.
func ValidStatus(s string) bool {
	switch s {
	case StatusReady, StatusInTransit, StatusDelivered, StatusCancelled,
		StatusCompleted, StatusPending, StatusAvailable:
		return true
	}
	return false
}

// StatusClass maps a donation status onto the display class the web
// dashboard uses for badges. Not a lifecycle rule.
func StatusClass(status string) string {
	switch status {
	case StatusReady, StatusPending, StatusAvailable:
		return "warning"
	case StatusInTransit:
		return "info"
	case StatusDelivered, StatusCompleted:
		return "success"
	case StatusCancelled:
		return "error"
	}
	return "info"
}

type Donation struct {
	gorm.Model
	EventDonorID        uint       `json:"event_donor_id" gorm:"column:event_donor_id;index;not null"`
	NgoID               *uint      `json:"ngo_id" gorm:"column:ngo_id;index"`
	VolunteerID         *uint      `json:"volunteer_id" gorm:"column:volunteer_id;index"`
	FoodItems           []FoodItem `json:"food_items" gorm:"foreignKey:DonationID"`
	TotalPlates         int        `json:"total_plates" gorm:"column:total_plates;not null"`
	EstimatedValueINR   int        `json:"estimated_value_inr" gorm:"column:estimated_value_inr;not null"`
	DonationDate        time.Time  `json:"donation_date" gorm:"column:donation_date"`
	PickupTime          time.Time  `json:"pickup_time" gorm:"column:pickup_time;not null"`
	Status              string     `json:"status" gorm:"column:status;index;not null"`
	Priority            string     `json:"priority" gorm:"column:priority;default:'medium'"`
	SpecialInstructions string     `json:"special_instructions" gorm:"column:special_instructions"`
	DeliveryMethod      string     `json:"delivery_method" gorm:"column:delivery_method;default:'pickup'"`
	TrackingID          string     `json:"tracking_id" gorm:"column:tracking_id;uniqueIndex;not null"`
	PhotoURL            string     `json:"photo_url" gorm:"column:photo_url"`
}

// TableName specifies the table name
func (Donation) TableName() string {
	return "donations"
}

// FoodItem is one entry of a donation's ordered food list. Position 0 is
// the primary item; plates and value are derived from it at creation time.
type FoodItem struct {
	gorm.Model
	DonationID      uint      `json:"-" gorm:"column:donation_id;index:idx_food_items_donation_position,priority:1;not null"`
	Position        int       `json:"-" gorm:"column:position;index:idx_food_items_donation_position,priority:2;not null;default:0"`
	ItemName        string    `json:"item_name" gorm:"column:item_name;not null"`
	Quantity        float64   `json:"quantity" gorm:"column:quantity;not null"`
	Unit            string    `json:"unit" gorm:"column:unit;not null"`
	Category        string    `json:"category" gorm:"column:category"`
	DietaryInfo     []string  `json:"dietary_info" gorm:"column:dietary_info;serializer:json"`
	ExpiryDate      time.Time `json:"expiry_date" gorm:"column:expiry_date"`
	PreparationDate time.Time `json:"preparation_date" gorm:"column:preparation_date"`
}

func (FoodItem) TableName() string {
	return "food_items"
}
