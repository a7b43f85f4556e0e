package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-level settings loaded from the environment.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string

	// SnapshotTTL is how long a computed analytics snapshot stays fresh.
	SnapshotTTL time.Duration

	// RefreshSchedule is the cron spec for the background snapshot refresh.
	RefreshSchedule string

	// RawDataTTL is how long the fetched response set is reused before
	// the repository is queried again.
	RawDataTTL time.Duration

	AdminUsername string
	AdminPassword string
	JWTSecret     string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "campuspulse"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:        getEnv("PORT", "8080"),
		SnapshotTTL:     getEnvDuration("SNAPSHOT_TTL_MINUTES", 60),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@every 1h"),
		RawDataTTL:      getEnvDuration("RAW_DATA_TTL_MINUTES", 5),
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "password123"),
		JWTSecret:       getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultMinutes int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return time.Duration(defaultMinutes) * time.Minute
}
