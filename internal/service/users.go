package service

import (
	"errors"
	"time"

	"github.com/annadaan/annadaan-backend/internal/models"
	"gorm.io/gorm"
)

// Role-appropriate defaults applied at registration, matching what the
// web client has always shown for fresh accounts.
const (
	defaultDonorCapacity     = "500 guests"
	defaultNgoCapacity       = "300 plates/day"
	defaultVolunteerCapacity = "50 plates"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	UserType string
	Address  models.Address

	EventType string // event_donor
	Vehicle   string // volunteer
	OrgType   string // ngo
}

// Register creates a user and its role profile in one transaction.
// Email is unique across all roles.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Name:             input.Name,
		Email:            input.Email,
		Password:         input.Password,
		Phone:            input.Phone,
		UserType:         input.UserType,
		Verified:         true,
		Status:           "active",
		RegistrationDate: time.Now(),
		Address:          input.Address,
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	switch models.UserType(input.UserType) {
	case models.UserTypeEventDonor:
		profile := DonorDefaults(input.EventType)
		user.Donor = &profile
	case models.UserTypeNgo:
		profile := NgoDefaults(input.OrgType)
		user.Ngo = &profile
	case models.UserTypeVolunteer:
		profile := VolunteerDefaults(input.Vehicle)
		user.Volunteer = &profile
	}

	if err := s.db.Create(&user).Error; err != nil {
		// The unique index backs up the pre-check under concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

func DonorDefaults(eventType string) models.DonorProfile {
	return models.DonorProfile{
		EventType: eventType,
		Capacity:  defaultDonorCapacity,
	}
}

func NgoDefaults(orgType string) models.NgoProfile {
	return models.NgoProfile{
		OrgType:  orgType,
		Capacity: defaultNgoCapacity,
		Services: []string{"meal_distribution"},
	}
}

func VolunteerDefaults(vehicle string) models.VolunteerProfile {
	return models.VolunteerProfile{
		VehicleType:     vehicle,
		Capacity:        defaultVolunteerCapacity,
		Rating:          5.0,
		TotalDeliveries: 0,
	}
}

// Authenticate checks the credentials against the stored hash. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.preloadProfiles(s.db).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// ListByRole returns all users of the given role in insertion order.
func (s *UserService) ListByRole(role string) ([]models.User, error) {
	var users []models.User
	if err := s.preloadProfiles(s.db).
		Where("user_type = ?", role).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.preloadProfiles(s.db).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) preloadProfiles(db *gorm.DB) *gorm.DB {
	return db.Preload("Donor").Preload("Ngo").Preload("Volunteer")
}
