package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeEventDonor UserType = "event_donor"
	UserTypeNgo        UserType = "ngo"
	UserTypeVolunteer  UserType = "volunteer"
)

// ValidUserType reports whether t is one of the three platform roles.
func ValidUserType(t string) bool {
	switch UserType(t) {
	case UserTypeEventDonor, UserTypeNgo, UserTypeVolunteer:
		return true
	}
	return false
}

// Address is embedded into users; coordinates are stored for display only.
type Address struct {
	Street  string  `json:"street"`
	Area    string  `json:"area"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Pincode string  `json:"pincode"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type User struct {
	gorm.Model
	Name             string    `json:"name" gorm:"column:name;not null"`
	Email            string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Password         string    `json:"-" gorm:"-:all"` // Temporary field for password handling
	PasswordHash     string    `json:"-" gorm:"column:password_hash;not null"`
	Phone            string    `json:"phone" gorm:"column:phone"`
	UserType         string    `json:"userType" gorm:"column:user_type;index;not null"`
	Verified         bool      `json:"verified" gorm:"column:verified;default:true"`
	Status           string    `json:"status" gorm:"column:status;default:'active'"`
	RegistrationDate time.Time `json:"registration_date" gorm:"column:registration_date"`
	Address          Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`

	// Exactly one of these is populated, selected by UserType.
	Donor     *DonorProfile     `json:"donor_profile,omitempty" gorm:"foreignKey:UserID"`
	Ngo       *NgoProfile       `json:"ngo_profile,omitempty" gorm:"foreignKey:UserID"`
	Volunteer *VolunteerProfile `json:"volunteer_profile,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// DonorProfile holds event-donor fields (wedding halls, temple kitchens, caterers).
type DonorProfile struct {
	gorm.Model
	UserID    uint   `json:"-" gorm:"column:user_id;uniqueIndex;not null"`
	EventType string `json:"event_type" gorm:"column:event_type"`
	Capacity  string `json:"capacity" gorm:"column:capacity"`
}

func (DonorProfile) TableName() string {
	return "donor_profiles"
}

// NgoProfile holds receiving-organization fields.
type NgoProfile struct {
	gorm.Model
	UserID   uint     `json:"-" gorm:"column:user_id;uniqueIndex;not null"`
	OrgType  string   `json:"org_type" gorm:"column:org_type"`
	Capacity string   `json:"capacity" gorm:"column:capacity"`
	Services []string `json:"services" gorm:"column:services;serializer:json"`
}

func (NgoProfile) TableName() string {
	return "ngo_profiles"
}

// VolunteerProfile holds delivery-volunteer fields.
type VolunteerProfile struct {
	gorm.Model
	UserID          uint     `json:"-" gorm:"column:user_id;uniqueIndex;not null"`
	VehicleType     string   `json:"vehicle_type" gorm:"column:vehicle_type"`
	Capacity        string   `json:"capacity" gorm:"column:capacity"`
	Rating          float64  `json:"rating" gorm:"column:rating;default:5"`
	TotalDeliveries int      `json:"total_deliveries" gorm:"column:total_deliveries;default:0"`
	AreaCoverage    []string `json:"area_coverage" gorm:"column:area_coverage;serializer:json"`
}

func (VolunteerProfile) TableName() string {
	return "volunteer_profiles"
}
