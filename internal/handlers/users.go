package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/annadaan/annadaan-backend/internal/models"
	"github.com/annadaan/annadaan-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// GetUsersByRole lists all users of one role (event_donor, ngo, volunteer).
func GetUsersByRole(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.Param("userType")
		if !models.ValidUserType(role) {
			c.JSON(400, gin.H{"error": "Invalid user type"})
			return
		}

		list, err := users.ListByRole(role)
		if err != nil {
			log.Printf("Error fetching users: %v", err)
			c.JSON(500, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(200, list)
	}
}

// GetUserByID retrieves a single user with its role profile. Mounted at
// /users/id/:id, where "id" arrives as the :userType route parameter.
func GetUserByID(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("userType") != "id" {
			c.JSON(404, gin.H{"error": "Not found"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid user ID"})
			return
		}

		user, err := users.GetByID(uint(id))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(404, gin.H{"error": "User not found"})
				return
			}
			log.Printf("Error fetching user: %v", err)
			c.JSON(500, gin.H{"error": "Failed to fetch user"})
			return
		}

		c.JSON(200, user)
	}
}
