package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultUserID is the simulated identity used when CURRENT_USER_ID is not
// set. The server is single-tenant; there is no request auth.
const DefaultUserID = "550e8400-e29b-41d4-a716-446655440000"

type Config struct {
	Port           string
	AdminPort      string
	DBPath         string
	SeedFile       string
	CurrentUserID  string
	CacheTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	GinMode        string
}

func Load() *Config {
	return &Config{
		Port:           envOrDefault("PORT", "3000"),
		AdminPort:      envOrDefault("ADMIN_PORT", "9090"),
		DBPath:         envOrDefault("DB_PATH", "data/selene.db"),
		SeedFile:       envOrDefault("SEED_FILE", "data/seed.json"),
		CurrentUserID:  envOrDefault("CURRENT_USER_ID", DefaultUserID),
		CacheTTL:       time.Duration(envOrDefaultInt("CACHE_TTL_MS", 5000)) * time.Millisecond,
		RateLimitRPS:   envOrDefaultFloat("RATE_LIMIT_RPS", 25),
		RateLimitBurst: envOrDefaultInt("RATE_LIMIT_BURST", 50),
		GinMode:        envOrDefault("GIN_MODE", "release"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envOrDefaultFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
