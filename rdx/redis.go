package rdx

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the shared Redis client. Called once from main.
func Init() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"), // Empty if no password
		DB:       0,                           // Default DB
	})
}

// --- Session keys ---

const sessionPrefix = "auth:token:"

// StoreSession records an issued token so logout can invalidate it.
func StoreSession(ctx context.Context, token string, ttl time.Duration) error {
	return Conn.Set(ctx, sessionPrefix+token, "1", ttl).Err()
}

// DropSession removes a token's session key.
func DropSession(ctx context.Context, token string) error {
	return Conn.Del(ctx, sessionPrefix+token).Err()
}
