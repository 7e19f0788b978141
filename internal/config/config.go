package config

import (
	"crypto/sha256"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultProfileSecret = "dev-profile-secret-change-in-production"
	defaultAdminPassword = "admin123"
)

type Config struct {
	Environment    string // ENV: production, development, etc.
	Port           string
	StoreBackend   string // memory, redis, postgres or mongo
	RedisURI       string
	PostgresURI    string
	MongoURI       string
	ProfileSecret  string // HMAC key for the profile cookie
	AdminUsername  string
	AdminPassword  string
	AdminEmail     string
	PasswordScheme string   // plain or argon2id
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	LogLevel       string
	TrustProxy     bool // honour X-Forwarded-For behind a reverse proxy

	DashboardRefresh time.Duration
	LoginRateEvery   time.Duration
	LoginRateBurst   int
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:8080")}
	}

	return &Config{
		Environment:      env,
		Port:             getEnv("PORT", "8080"),
		StoreBackend:     strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", "memory"))),
		RedisURI:         getEnv("REDIS_URI", "redis://localhost:6379/0"),
		PostgresURI:      getEnv("POSTGRES_URI", "postgres://localhost:5432/dhrms?sslmode=disable"),
		MongoURI:         getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/dhrms")),
		ProfileSecret:    getEnv("PROFILE_SECRET", defaultProfileSecret),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		AdminEmail:       getEnv("ADMIN_EMAIL", "admin@dhrms.com"),
		PasswordScheme:   strings.ToLower(getEnv("PASSWORD_SCHEME", "plain")),
		AllowedOrigins:   allowedOrigins,
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		TrustProxy:       getBool("TRUST_PROXY", false),
		DashboardRefresh: getDuration("DASHBOARD_REFRESH", 5*time.Second),
		LoginRateEvery:   getDuration("LOGIN_RATE_EVERY", 2*time.Second),
		LoginRateBurst:   getInt("LOGIN_RATE_BURST", 5),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// UsesDefaultSecret reports whether PROFILE_SECRET was left at its development value.
func (c *Config) UsesDefaultSecret() bool {
	return c.ProfileSecret == defaultProfileSecret
}

// UsesDefaultAdminPassword reports whether ADMIN_PASSWORD was left at the demo value.
func (c *Config) UsesDefaultAdminPassword() bool {
	return c.AdminPassword == defaultAdminPassword
}

// Validate rejects demo credentials in production.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.UsesDefaultSecret() {
		return errors.New("PROFILE_SECRET must be set in production")
	}
	if c.UsesDefaultAdminPassword() {
		return errors.New("ADMIN_PASSWORD must be changed in production")
	}
	return nil
}

// CSRFKey derives the 32-byte form token key from PROFILE_SECRET.
func (c *Config) CSRFKey() []byte {
	sum := sha256.Sum256([]byte("csrf:" + c.ProfileSecret))
	return sum[:]
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration falls back to the default when the variable is unset or unparsable.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
