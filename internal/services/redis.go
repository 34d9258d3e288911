package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client. Redis is optional; when it is not
// configured the availability helpers become no-ops.
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	RedisClient = client
	return nil
}

// SetVolunteerAvailability stores whether a volunteer is free to take a
// pickup. Cleared to false when a pickup is accepted, restored on delivery.
func SetVolunteerAvailability(ctx context.Context, volunteerID uint, isAvailable bool) error {
	if RedisClient == nil {
		return nil
	}

	key := fmt.Sprintf("volunteer:availability:%d", volunteerID)
	value := "true"
	if !isAvailable {
		value = "false"
	}
	return RedisClient.Set(ctx, key, value, time.Hour).Err()
}

// GetVolunteerAvailability retrieves a volunteer's availability flag.
// Volunteers without a flag are considered available.
func GetVolunteerAvailability(ctx context.Context, volunteerID uint) (bool, error) {
	if RedisClient == nil {
		return true, nil
	}

	key := fmt.Sprintf("volunteer:availability:%d", volunteerID)
	result, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return result == "true", nil
}
