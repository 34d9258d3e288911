package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/annadaan/annadaan-backend/internal/database"
	"github.com/annadaan/annadaan-backend/internal/models"
	"github.com/annadaan/annadaan-backend/pkg/utils"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Synthetic data generator for demos and load testing. Every account it
// creates uses the password "demo123".

const seedPassword = "demo123"

type cityData struct {
	city  string
	state string
	areas []string
}

var cities = []cityData{
	{"Bengaluru", "Karnataka", []string{"Indiranagar", "Koramangala", "Whitefield", "Jayanagar", "Malleshwaram", "HSR Layout", "BTM Layout", "Electronic City", "Marathahalli", "Rajajinagar"}},
	{"Mumbai", "Maharashtra", []string{"Andheri", "Bandra", "Juhu", "Powai", "Malad", "Dadar", "Worli", "Colaba", "Borivali", "Thane"}},
	{"Delhi", "Delhi", []string{"Connaught Place", "Karol Bagh", "Dwarka", "Rohini", "Lajpat Nagar", "Saket", "Vasant Kunj", "Pitampura", "Janakpuri", "Nehru Place"}},
	{"Chennai", "Tamil Nadu", []string{"T Nagar", "Anna Nagar", "Adyar", "Velachery", "Mylapore", "Nungambakkam", "Porur", "Tambaram", "Egmore", "Guindy"}},
	{"Hyderabad", "Telangana", []string{"Banjara Hills", "Jubilee Hills", "Hitech City", "Gachibowli", "Kukatpally", "Madhapur", "Secunderabad", "Dilsukhnagar", "Ameerpet", "Kondapur"}},
	{"Pune", "Maharashtra", []string{"Koregaon Park", "Hinjewadi", "Viman Nagar", "Wakad", "Kothrud", "Pimpri", "Deccan", "Hadapsar", "Baner", "Aundh"}},
	{"Kolkata", "West Bengal", []string{"Salt Lake", "Park Street", "Ballygunge", "Howrah", "Rajarhat", "Alipore", "New Town", "Dum Dum", "Behala", "Jadavpur"}},
	{"Ahmedabad", "Gujarat", []string{"Satellite", "Vastrapur", "Prahlad Nagar", "Navrangpura", "Bodakdev", "Maninagar", "Ashram Road", "SG Highway", "Chandkheda", "Gota"}},
}

var (
	donorPrefixes = []string{"Maharaja", "Royal", "Grand", "Imperial", "Lotus", "Heritage", "Crystal", "Golden", "Silver", "Diamond", "Pearl", "Sapphire", "Emerald", "Paradise", "Majestic"}
	donorTypes    = []string{"Palace", "Garden", "Terrace", "Manor", "Court", "Hall", "Resort"}
	donorSuffixes = []string{"Banquet Hall", "Convention Center", "Events", "Wedding Lawns", "Celebrations"}
	templeNames   = []string{"Annapurna", "Lakshmi", "Venkateswara", "Balaji", "Shiva", "Krishna", "Rama", "Hanuman", "Durga", "Ganesh"}
	cateringNames = []string{"Royal Caterers", "Spice Garden Catering", "Food Express", "Tasty Bites", "Delicious Delights", "Gourmet Kitchen", "Chef's Special", "Feast Masters"}

	ngoNames    = []string{"Akshaya Patra", "Seva Sahayog", "Annamrita Foundation", "Food for All", "Hunger Free", "Serve the Needy", "Hope Foundation", "Care Trust", "Compassion India", "Helping Hands"}
	ngoSuffixes = []string{"Foundation", "Trust", "Charitable Society", "Welfare Organization", "Service Society", "Aid Foundation"}
	ngoOrgTypes = []string{"ngo", "charitable_trust", "seva_organization", "orphanage", "old_age_home"}

	firstNames = []string{"Rajesh", "Priya", "Amit", "Sneha", "Rahul", "Anjali", "Vijay", "Deepika", "Arjun", "Kavya", "Suresh", "Meera", "Anil", "Pooja", "Ravi", "Sita", "Kiran", "Lakshmi", "Manoj", "Divya"}
	lastNames  = []string{"Kumar", "Singh", "Sharma", "Patel", "Reddy", "Nair", "Iyer", "Rao", "Gupta", "Chopra", "Mehta", "Joshi", "Desai", "Agarwal", "Malhotra"}

	vehicleTypes     = []string{"bike", "car", "auto_rickshaw", "tempo", "van"}
	donationStatuses = []string{models.StatusReady, models.StatusInTransit, models.StatusDelivered, models.StatusCompleted}
)

type foodEntry struct {
	name     string
	category string
	dietary  []string
}

var foodPool = []foodEntry{
	{"Biryani", "main_course", []string{"non_veg"}},
	{"Veg Biryani", "main_course", []string{"veg"}},
	{"Dal Makhani", "main_course", []string{"veg"}},
	{"Paneer Butter Masala", "main_course", []string{"veg"}},
	{"Roti", "main_course", []string{"veg"}},
	{"Naan", "main_course", []string{"veg"}},
	{"Rice", "main_course", []string{"veg"}},
	{"Sambar", "main_course", []string{"veg"}},
	{"Rasam", "main_course", []string{"veg"}},
	{"Chole Bhature", "main_course", []string{"veg"}},
	{"Pongal", "main_course", []string{"veg"}},
	{"Idli", "breakfast", []string{"veg"}},
	{"Dosa", "breakfast", []string{"veg"}},
	{"Upma", "breakfast", []string{"veg"}},
	{"Poha", "breakfast", []string{"veg"}},
	{"Gulab Jamun", "sweets", []string{"veg"}},
	{"Rasgulla", "sweets", []string{"veg"}},
	{"Ladoo", "sweets", []string{"veg"}},
	{"Jalebi", "sweets", []string{"veg"}},
	{"Kheer", "sweets", []string{"veg"}},
	{"Halwa", "sweets", []string{"veg"}},
	{"Kesari Bath", "sweets", []string{"veg"}},
	{"Samosa", "snacks", []string{"veg"}},
	{"Pakora", "snacks", []string{"veg"}},
	{"Vada", "snacks", []string{"veg"}},
	{"Chicken Curry", "main_course", []string{"non_veg"}},
	{"Mutton Curry", "main_course", []string{"non_veg"}},
	{"Fish Curry", "main_course", []string{"non_veg"}},
}

func main() {
	donors := flag.Int("donors", 40, "number of event donors to create")
	ngos := flag.Int("ngos", 40, "number of NGOs to create")
	volunteers := flag.Int("volunteers", 20, "number of volunteers to create")
	donations := flag.Int("donations", 5000, "number of donations to create")
	batchSize := flag.Int("batch", 500, "insert batch size")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	log.Println("Clearing existing data...")
	for _, table := range []string{"food_items", "donations", "donor_profiles", "ngo_profiles", "volunteer_profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	// One bcrypt run for every seeded account; hashing per-user would
	// dominate the whole seed at scale.
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	passwordHash := string(hash)

	users := generateUsers(*donors, *ngos, *volunteers, passwordHash)
	log.Printf("Inserting %d users...", len(users))
	if err := db.CreateInBatches(&users, *batchSize).Error; err != nil {
		log.Fatalf("Failed to insert users: %v", err)
	}

	records := generateDonations(users, *donations)
	log.Printf("Inserting %d donations in batches...", len(records))
	if err := db.Session(&gorm.Session{CreateBatchSize: *batchSize}).Create(&records).Error; err != nil {
		log.Fatalf("Failed to insert donations: %v", err)
	}

	log.Println("Database seeded successfully!")
	log.Printf("Users: %d (donors %d, ngos %d, volunteers %d)", len(users), *donors, *ngos, *volunteers)
	log.Printf("Donations: %d", len(records))
	log.Printf("Demo accounts: any seeded email with password %q", seedPassword)
}

func generateUsers(donors, ngos, volunteers int, passwordHash string) []models.User {
	users := make([]models.User, 0, donors+ngos+volunteers)

	for i := 0; i < donors; i++ {
		city := pick(cities)
		var name, eventType string
		switch rand.Intn(3) {
		case 0:
			name = fmt.Sprintf("%s %s %s", pick(donorPrefixes), pick(donorTypes), pick(donorSuffixes))
			eventType = "wedding_hall"
		case 1:
			name = pick(templeNames) + " Temple Kitchen"
			eventType = "temple_kitchen"
		default:
			name = pick(cateringNames)
			eventType = "catering_service"
		}

		users = append(users, models.User{
			Name:             name,
			Email:            randomEmail(name),
			PasswordHash:     passwordHash,
			Phone:            randomPhone(),
			UserType:         string(models.UserTypeEventDonor),
			Verified:         true,
			Status:           "active",
			RegistrationDate: time.Now(),
			Address:          randomAddress(city, "Main Road"),
			Donor: &models.DonorProfile{
				EventType: eventType,
				Capacity:  fmt.Sprintf("%d guests", randomBetween(100, 1000)),
			},
		})
	}

	for i := 0; i < ngos; i++ {
		city := pick(cities)
		name := pick(ngoNames) + " " + pick(ngoSuffixes)
		services := []string{"meal_distribution", "community_kitchen", "disaster_relief"}

		users = append(users, models.User{
			Name:             name,
			Email:            randomEmail(name),
			PasswordHash:     passwordHash,
			Phone:            randomPhone(),
			UserType:         string(models.UserTypeNgo),
			Verified:         true,
			Status:           "active",
			RegistrationDate: time.Now(),
			Address:          randomAddress(city, "NGO Street"),
			Ngo: &models.NgoProfile{
				OrgType:  pick(ngoOrgTypes),
				Capacity: fmt.Sprintf("%d plates/day", randomBetween(200, 2000)),
				Services: services[:randomBetween(1, 3)],
			},
		})
	}

	for i := 0; i < volunteers; i++ {
		city := pick(cities)
		name := pick(firstNames) + " " + pick(lastNames)

		users = append(users, models.User{
			Name:             name,
			Email:            randomEmail(name),
			PasswordHash:     passwordHash,
			Phone:            randomPhone(),
			UserType:         string(models.UserTypeVolunteer),
			Verified:         true,
			Status:           "active",
			RegistrationDate: time.Now(),
			Address: models.Address{
				City:  city.city,
				State: city.state,
			},
			Volunteer: &models.VolunteerProfile{
				VehicleType:     pick(vehicleTypes),
				Capacity:        fmt.Sprintf("%d plates", randomBetween(20, 100)),
				Rating:          float64(randomBetween(35, 50)) / 10,
				TotalDeliveries: randomBetween(0, 200),
				AreaCoverage:    []string{pick(city.areas), pick(city.areas), pick(city.areas)},
			},
		})
	}

	return users
}

func generateDonations(users []models.User, count int) []models.Donation {
	var donorIDs, ngoIDs, volunteerIDs []uint
	for _, u := range users {
		switch models.UserType(u.UserType) {
		case models.UserTypeEventDonor:
			donorIDs = append(donorIDs, u.ID)
		case models.UserTypeNgo:
			ngoIDs = append(ngoIDs, u.ID)
		case models.UserTypeVolunteer:
			volunteerIDs = append(volunteerIDs, u.ID)
		}
	}
	if len(donorIDs) == 0 {
		log.Fatal("No event donors to attach donations to")
	}

	// Tracking codes must be unique within the run; at a million rows
	// random collisions in a 36^6 space are a statistical certainty.
	seen := make(map[string]struct{}, count)

	donations := make([]models.Donation, 0, count)
	for i := 0; i < count; i++ {
		food := pick(foodPool)
		quantity := float64(randomBetween(10, 100))
		unit := pick([]string{"kg", "plates", "liters"})

		totalPlates, _, err := utils.NormalizePlates(quantity, unit)
		if err != nil {
			log.Fatalf("Failed to normalize quantity: %v", err)
		}

		var ngoID, volunteerID *uint
		if len(ngoIDs) > 0 && rand.Float64() > 0.2 { // 80% have an NGO assigned
			id := pick(ngoIDs)
			ngoID = &id
			if len(volunteerIDs) > 0 && rand.Float64() > 0.3 { // 70% of those have a volunteer
				vid := pick(volunteerIDs)
				volunteerID = &vid
			}
		}

		var status string
		switch {
		case ngoID == nil:
			status = models.StatusReady
		case volunteerID == nil:
			status = pick([]string{models.StatusReady, models.StatusInTransit})
		default:
			status = pick(donationStatuses)
		}

		donationDate := time.Now().AddDate(0, 0, -randomBetween(0, 90))
		pickupTime := donationDate.Add(time.Duration(randomBetween(1, 6)) * time.Hour)
		expiryDate := pickupTime.Add(time.Duration(randomBetween(2, 8)) * time.Hour)

		instructions := ""
		if rand.Float64() > 0.7 {
			instructions = "Keep refrigerated"
		}

		donations = append(donations, models.Donation{
			EventDonorID: pick(donorIDs),
			NgoID:        ngoID,
			VolunteerID:  volunteerID,
			FoodItems: []models.FoodItem{{
				Position:        0,
				ItemName:        food.name,
				Quantity:        quantity,
				Unit:            unit,
				Category:        food.category,
				DietaryInfo:     food.dietary,
				ExpiryDate:      expiryDate,
				PreparationDate: donationDate,
			}},
			TotalPlates:         totalPlates,
			EstimatedValueINR:   totalPlates * randomBetween(80, 150),
			DonationDate:        donationDate,
			PickupTime:          pickupTime,
			Status:              status,
			Priority:            pick([]string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}),
			SpecialInstructions: instructions,
			DeliveryMethod:      "pickup",
			TrackingID:          uniqueTrackingID(seen),
		})

		if (i+1)%10000 == 0 {
			log.Printf("Generated %d donations...", i+1)
		}
	}

	return donations
}

func uniqueTrackingID(seen map[string]struct{}) string {
	for {
		code, err := utils.GenerateTrackingID()
		if err != nil {
			log.Fatalf("Failed to generate tracking id: %v", err)
		}
		if _, taken := seen[code]; !taken {
			seen[code] = struct{}{}
			return code
		}
	}
}

func pick[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

func randomBetween(min, max int) int {
	return min + rand.Intn(max-min+1)
}

func randomPhone() string {
	return fmt.Sprintf("+91-%d", randomBetween(7000000000, 9999999999))
}

func randomEmail(name string) string {
	clean := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	clean = strings.ReplaceAll(clean, "'", "")
	return fmt.Sprintf("%s%d@gmail.com", clean, randomBetween(1, 99999))
}

func randomAddress(city cityData, street string) models.Address {
	return models.Address{
		Street:  fmt.Sprintf("%d %s", randomBetween(1, 500), street),
		Area:    pick(city.areas),
		City:    city.city,
		State:   city.state,
		Pincode: fmt.Sprintf("%d", randomBetween(100000, 999999)),
		Lng:     float64(randomBetween(72, 88)) + rand.Float64(),
		Lat:     float64(randomBetween(8, 35)) + rand.Float64(),
	}
}
