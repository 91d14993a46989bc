// Package config builds process configuration from environment variables
// so main stays lean.
package config

import (
	"os"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// StoreBackend selects the persistence backend:
	// "sqlite", "mongodb", or "memory".
	StoreBackend string

	// DBPath is the sqlite database file path.
	DBPath string

	// MongoURI and MongoDB configure the mongodb backend.
	MongoURI string
	MongoDB  string

	// JWTSecret signs session tokens. Injected into the auth component
	// at construction, never read ambiently.
	JWTSecret string

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration

	// AdminToken authorizes administrative operations
	// (deleteAllInsurances). Empty disables them entirely.
	AdminToken string
}

// FromEnv builds a Config from environment variables, with development
// defaults for everything but the admin token.
func FromEnv() Config {
	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			ttl = d
		}
	}

	return Config{
		Addr:         getEnv("CRASHLOG_ADDR", ":8080"),
		StoreBackend: getEnv("STORE_BACKEND", "sqlite"),
		DBPath:       getEnv("DB_PATH", "./data/crashlog.db"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "crashlog"),
		// Default for development only, override in production.
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		TokenTTL:   ttl,
		AdminToken: os.Getenv("ADMIN_TOKEN"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
