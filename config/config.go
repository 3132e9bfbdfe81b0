package config

import (
	"os"
	"strconv"
	"time"
)

// Config menampung seluruh konfigurasi session client yang dibaca dari
// environment. Nilai default dipakai kalau variabel tidak di-set.
type Config struct {
	ServerURL string
	WSURL     string
	AuthToken string

	Branch    string
	Station   string
	TableCode string

	AlertThreshold  time.Duration
	RefreshInterval time.Duration
	RedisplayTick   time.Duration

	CartDBPath string
}

// Load membaca konfigurasi dari environment variable.
func Load() *Config {
	return &Config{
		ServerURL: getEnv("RESTO_SERVER_URL", "http://localhost:8000"),
		WSURL:     getEnv("RESTO_WS_URL", "ws://localhost:8000/ws/kds"),
		AuthToken: os.Getenv("RESTO_AUTH_TOKEN"),

		Branch:    os.Getenv("RESTO_BRANCH"),
		Station:   os.Getenv("RESTO_STATION"),
		TableCode: os.Getenv("RESTO_TABLE_CODE"),

		AlertThreshold:  time.Duration(getEnvInt("ALERT_THRESHOLD_SECONDS", 600)) * time.Second,
		RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_MS", 5000)) * time.Millisecond,
		RedisplayTick:   time.Second,

		CartDBPath: getEnv("CART_DB_PATH", "cart.db"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
