package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/annadaan/annadaan-backend/internal/middleware"
	"github.com/annadaan/annadaan-backend/internal/models"
	"github.com/annadaan/annadaan-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires the API route table over an in-memory database, the
// same shape the server mounts in production.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

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

	userService := service.NewUserService(db)
	donationService := service.NewDonationService(db)
	statsService := service.NewStatsService(db)

	r := gin.New()
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", Register(userService))
			auth.POST("/login", Login(userService))
		}

		api.GET("/stats", GetImpactStats(statsService))

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/:userType", GetUsersByRole(userService))
				users.GET("/:userType/:id", GetUserByID(userService))
			}

			donations := protected.Group("/donations")
			{
				donations.GET("", GetDonations(donationService))
				donations.POST("", CreateDonation(donationService))
				donations.GET("/:id", GetDonation(donationService))
				donations.PATCH("/:id", UpdateDonation(donationService))
				donations.POST("/:id/request", RequestDonation(donationService))
				donations.POST("/:id/accept-pickup", AcceptPickup(donationService))
			}
		}
	}

	return r, db
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser creates an account over the API and returns its id and token.
func registerUser(t *testing.T, r *gin.Engine, role, email string) (uint, string) {
	t.Helper()

	w := doJSON(r, "POST", "/api/auth/register", "", gin.H{
		"name":     "Test " + role,
		"email":    email,
		"password": "demo123",
		"phone":    "+91-9876543210",
		"userType": role,
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"ID"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func createDonationViaAPI(t *testing.T, r *gin.Engine, donorToken string, quantity float64, unit string) map[string]interface{} {
	t.Helper()

	w := doJSON(r, "POST", "/api/donations", donorToken, gin.H{
		"item_name":   "Pongal",
		"quantity":    quantity,
		"unit":        unit,
		"category":    "main_course",
		"expiry_date": time.Now().Add(6 * time.Hour).Format(time.RFC3339),
		"pickup_time": time.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		Donation map[string]interface{} `json:"donation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Donation
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupRouter(t)

	registerUser(t, r, "event_donor", "donor@example.com")

	// Duplicate email.
	w := doJSON(r, "POST", "/api/auth/register", "", gin.H{
		"name":     "Again",
		"email":    "donor@example.com",
		"password": "demo123",
		"phone":    "+91-9876543210",
		"userType": "ngo",
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	// Short password fails validation.
	w = doJSON(r, "POST", "/api/auth/register", "", gin.H{
		"name":     "Short",
		"email":    "short@example.com",
		"password": "123",
		"phone":    "+91-9876543210",
		"userType": "volunteer",
	})
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email":    "donor@example.com",
		"password": "demo123",
	})
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	w = doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email":    "donor@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, "GET", "/api/donations", "", nil)
	assert.Equal(t, 401, w.Code)

	w = doJSON(r, "GET", "/api/donations", "not-a-token", nil)
	assert.Equal(t, 401, w.Code)
}

func TestCreateDonationEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	_, donorToken := registerUser(t, r, "event_donor", "donor@example.com")
	_, ngoToken := registerUser(t, r, "ngo", "ngo@example.com")

	donation := createDonationViaAPI(t, r, donorToken, 40, "kg")
	assert.Equal(t, float64(160), donation["total_plates"])
	assert.Equal(t, float64(16000), donation["estimated_value_inr"])
	assert.Equal(t, "तैयार है", donation["status"])

	// Only event donors may create donations.
	w := doJSON(r, "POST", "/api/donations", ngoToken, gin.H{
		"item_name":   "Rice",
		"quantity":    10,
		"unit":        "kg",
		"category":    "main_course",
		"expiry_date": time.Now().Add(6 * time.Hour).Format(time.RFC3339),
		"pickup_time": time.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, 403, w.Code)

	// Zero quantity is rejected.
	w = doJSON(r, "POST", "/api/donations", donorToken, gin.H{
		"item_name":   "Rice",
		"quantity":    0,
		"unit":        "kg",
		"category":    "main_course",
		"expiry_date": time.Now().Add(6 * time.Hour).Format(time.RFC3339),
		"pickup_time": time.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, 400, w.Code)
}

func TestClaimFlow(t *testing.T) {
	r, _ := setupRouter(t)
	_, donorToken := registerUser(t, r, "event_donor", "donor@example.com")
	ngoAID, ngoAToken := registerUser(t, r, "ngo", "a@example.com")
	_, ngoBToken := registerUser(t, r, "ngo", "b@example.com")
	_, volToken := registerUser(t, r, "volunteer", "v@example.com")

	donation := createDonationViaAPI(t, r, donorToken, 40, "kg")
	id := fmt.Sprintf("%.0f", donation["ID"].(float64))

	// Volunteers cannot claim for an organization.
	w := doJSON(r, "POST", "/api/donations/"+id+"/request", volToken, nil)
	assert.Equal(t, 403, w.Code)

	w = doJSON(r, "POST", "/api/donations/"+id+"/request", ngoAToken, nil)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "रास्ते में")

	// Second organization loses the race.
	w = doJSON(r, "POST", "/api/donations/"+id+"/request", ngoBToken, nil)
	assert.Equal(t, 409, w.Code)
	assert.Contains(t, w.Body.String(), "already been claimed")

	// Winner stays on the record.
	w = doJSON(r, "GET", "/api/donations/"+id, donorToken, nil)
	require.Equal(t, 200, w.Code)
	var got struct {
		NgoID *uint `json:"ngo_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.NgoID)
	assert.Equal(t, ngoAID, *got.NgoID)

	// Volunteer assignment follows the same one-winner rule.
	w = doJSON(r, "POST", "/api/donations/"+id+"/accept-pickup", volToken, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	w = doJSON(r, "POST", "/api/donations/"+id+"/accept-pickup", volToken, nil)
	assert.Equal(t, 409, w.Code)
	assert.Contains(t, w.Body.String(), "already has a volunteer")
}

func TestPatchStatusRoundTripsDevanagari(t *testing.T) {
	r, _ := setupRouter(t)
	_, donorToken := registerUser(t, r, "event_donor", "donor@example.com")

	donation := createDonationViaAPI(t, r, donorToken, 10, "kg")
	id := fmt.Sprintf("%.0f", donation["ID"].(float64))

	w := doJSON(r, "PATCH", "/api/donations/"+id, donorToken, gin.H{
		"status": "पहुँच गया",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Donation struct {
			Status string `json:"status"`
		} `json:"donation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "पहुँच गया", resp.Donation.Status)

	w = doJSON(r, "PATCH", "/api/donations/"+id, donorToken, gin.H{
		"status": "shipped",
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid donation status")
}

func TestListDonationsFilter(t *testing.T) {
	r, _ := setupRouter(t)
	donorID, donorToken := registerUser(t, r, "event_donor", "donor@example.com")
	_, ngoToken := registerUser(t, r, "ngo", "ngo@example.com")

	first := createDonationViaAPI(t, r, donorToken, 10, "kg")
	createDonationViaAPI(t, r, donorToken, 20, "kg")
	id := fmt.Sprintf("%.0f", first["ID"].(float64))

	w := doJSON(r, "POST", "/api/donations/"+id+"/request", ngoToken, nil)
	require.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", fmt.Sprintf("/api/donations?event_donor_id=%d", donorID), donorToken, nil)
	require.Equal(t, 200, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	w = doJSON(r, "GET", "/api/donations?status="+url.QueryEscape("तैयार है"), donorToken, nil)
	require.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doJSON(r, "GET", "/api/donations?ngo_id=abc", donorToken, nil)
	assert.Equal(t, 400, w.Code)
}

func TestUserDirectoryEndpoints(t *testing.T) {
	r, _ := setupRouter(t)
	donorID, donorToken := registerUser(t, r, "event_donor", "donor@example.com")
	registerUser(t, r, "volunteer", "v@example.com")

	w := doJSON(r, "GET", "/api/users/volunteer", donorToken, nil)
	require.Equal(t, 200, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doJSON(r, "GET", "/api/users/superhero", donorToken, nil)
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, "GET", fmt.Sprintf("/api/users/id/%d", donorID), donorToken, nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "donor@example.com")

	w = doJSON(r, "GET", "/api/users/id/99999", donorToken, nil)
	assert.Equal(t, 404, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	_, donorToken := registerUser(t, r, "event_donor", "donor@example.com")
	registerUser(t, r, "volunteer", "v@example.com")
	createDonationViaAPI(t, r, donorToken, 35, "kg")

	// Stats are public.
	w := doJSON(r, "GET", "/api/stats", "", nil)
	require.Equal(t, 200, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(1), stats["total_donations"])
	assert.Equal(t, float64(140), stats["plates_served"])
	assert.Equal(t, float64(14000), stats["value_inr"])
	assert.Equal(t, float64(35), stats["food_saved_kg"])
	assert.Equal(t, float64(450), stats["fuel_saved_liters"])
	assert.Equal(t, float64(140), stats["people_fed"])
	assert.Equal(t, float64(1), stats["volunteers_involved"])
}
