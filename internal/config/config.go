package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultAPIKey   = "your-secret-api-key-change-this"
	defaultAdminKey = "your-admin-key-change-this"
)

type Config struct {
	// Server
	Port string
	Env  string // development, production

	// Bearer keys. APIKey authorizes reads, AdminKey authorizes
	// create/update/delete/list.
	APIKey   string
	AdminKey string

	// Optional JSON object of organization code -> email config,
	// loaded into the store once at startup.
	InitialConfig string
}

func Load() *Config {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		Env:           getEnv("ENV", "development"),
		APIKey:        getEnv("API_KEY", defaultAPIKey),
		AdminKey:      getEnv("ADMIN_KEY", defaultAdminKey),
		InitialConfig: getEnv("INITIAL_CONFIG", ""),
	}

	if cfg.APIKey == defaultAPIKey || cfg.AdminKey == defaultAdminKey {
		slog.Warn("running with default bearer keys; set API_KEY and ADMIN_KEY")
	}

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
