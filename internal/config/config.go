package config

import (
	"os"
	"strings"
	"time"

	"github.com/filmdb/movies-api/internal/auth"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. It is public and must
// never sign tokens outside local development.
const DefaultJWTSecret = "secretkey"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port           string
	JWTSecret      string
	TokenTTL       time.Duration
	DBDriver       string
	DatabaseDSN    string
	AllowedOrigins []string
	LogLevel       string
}

func Load() *Config {
	return &Config{
		Port:           getenv("PORT", "3300"),
		JWTSecret:      getenv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:       getduration("TOKEN_TTL", auth.TokenTTL),
		DBDriver:       getenv("DB_DRIVER", "sqlite"),
		DatabaseDSN:    getenv("DATABASE_DSN", "movies.db"),
		AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}
}

// InsecureSecret reports whether tokens are signed with the built-in default.
func (c *Config) InsecureSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
