package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the service settings read from the environment.
type Config struct {
	HTTPAddr          string        // listen address
	BackendURL        string        // provider API base URL
	RedisAddr         string        // empty selects the in-memory cache
	DatabaseURL       string        // empty selects in-memory calculation history
	PollInterval      time.Duration // payment polling period
	BackendTimeout    time.Duration // per-request timeout towards the provider
	SessionIdleTTL    time.Duration // untouched payment sessions are closed after this
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	LimitsFile        string
	LogLevel          string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using process environment")
	}

	return &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		BackendURL:        getEnv("BACKEND_URL", "http://localhost:3000"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		PollInterval:      getDuration("POLL_INTERVAL", 60*time.Second),
		BackendTimeout:    getDuration("BACKEND_TIMEOUT", 30*time.Second),
		SessionIdleTTL:    getDuration("SESSION_IDLE_TTL", 30*time.Minute),
		RateLimitCapacity: getInt("RATE_LIMIT_CAPACITY", 30),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
		LimitsFile:        getEnv("LIMITS_FILE", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
