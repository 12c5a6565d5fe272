package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration, built once in main and passed down.
type Config struct {
	Env             string
	Port            string
	UseHTTPS        bool
	DatabaseDSN     string
	EntraTenant     string
	EntraClientID   string
	EntraSecret     string
	EntraCallback   string
	SessionLifetime int64 // seconds
}

// Load builds the configuration from environment variables.
func Load() Config {
	return Config{
		Env:             get("APP_ENV", "dev"),
		Port:            get("PORT", "8080"),
		UseHTTPS:        get("USE_HTTPS", "false") == "true",
		DatabaseDSN:     get("DATABASE_DSN", "portal:portal@tcp(localhost:3306)/portal?parseTime=true"),
		EntraTenant:     os.Getenv("ENTRA_TENANT_ID"),
		EntraClientID:   os.Getenv("ENTRA_CLIENT_ID"),
		EntraSecret:     os.Getenv("ENTRA_CLIENT_SECRET"),
		EntraCallback:   os.Getenv("ENTRA_CALLBACK_URL"),
		SessionLifetime: getInt64("SESSION_LIFETIME", 3600),
	}
}

// Validate checks that the configuration is usable for serving.
func (c Config) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.EntraTenant == "" || c.EntraClientID == "" || c.EntraSecret == "" || c.EntraCallback == "" {
		return fmt.Errorf("ENTRA_TENANT_ID, ENTRA_CLIENT_ID, ENTRA_CLIENT_SECRET and ENTRA_CALLBACK_URL are required")
	}
	return nil
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
