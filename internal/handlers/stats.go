package handlers

import (
	"log"

	"github.com/annadaan/annadaan-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// GetImpactStats serves the platform-wide impact aggregate. It is
// recomputed from the store on every request.
func GetImpactStats(stats *service.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := stats.Compute(c.Request.Context())
		if err != nil {
			log.Printf("Error computing stats: %v", err)
			c.JSON(500, gin.H{"error": "Failed to fetch statistics"})
			return
		}

		c.JSON(200, result)
	}
}
