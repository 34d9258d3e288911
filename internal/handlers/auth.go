package handlers

import (
	"errors"
	"log"

	"github.com/annadaan/annadaan-backend/internal/models"
	"github.com/annadaan/annadaan-backend/internal/service"
	"github.com/annadaan/annadaan-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	UserType string `json:"userType" binding:"required,oneof=event_donor ngo volunteer"`

	// Role-specific fields; only the one matching userType is read.
	EventType string `json:"event_type"`
	Vehicle   string `json:"vehicle"`
	OrgType   string `json:"org_type"`

	Address models.Address `json:"address"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		user, err := users.Register(service.RegisterInput{
			Name:      input.Name,
			Email:     input.Email,
			Password:  input.Password,
			Phone:     input.Phone,
			UserType:  input.UserType,
			Address:   input.Address,
			EventType: input.EventType,
			Vehicle:   input.Vehicle,
			OrgType:   input.OrgType,
		})
		if err != nil {
			if errors.Is(err, service.ErrDuplicateEmail) {
				c.JSON(400, gin.H{"error": "User with this email already exists"})
				return
			}
			log.Printf("Registration error: %v", err)
			c.JSON(500, gin.H{"error": "Registration failed"})
			return
		}

		token, err := utils.GenerateToken(user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(201, gin.H{
			"success": true,
			"user":    user,
			"token":   token,
		})
	}
}

func Login(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		user, err := users.Authenticate(input.Email, input.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				c.JSON(401, gin.H{"error": "Invalid email or password"})
				return
			}
			log.Printf("Login error: %v", err)
			c.JSON(500, gin.H{"error": "Login failed"})
			return
		}

		token, err := utils.GenerateToken(user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"user":    user,
			"token":   token,
		})
	}
}
