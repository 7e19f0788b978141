package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ENV", "PORT", "STORE_BACKEND", "REDIS_URI", "POSTGRES_URI", "MONGODB_URI", "MONGO_URI",
		"PROFILE_SECRET", "ADMIN_USERNAME", "ADMIN_PASSWORD", "ADMIN_EMAIL", "PASSWORD_SCHEME",
		"ALLOWED_ORIGINS", "FRONTEND_URL", "LOG_LEVEL", "TRUST_PROXY", "DASHBOARD_REFRESH", "LOGIN_RATE_EVERY", "LOGIN_RATE_BURST",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	require.NotNil(t, cfg)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin123", cfg.AdminPassword)
	assert.Equal(t, "plain", cfg.PasswordScheme)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.DashboardRefresh)
	assert.Equal(t, 5, cfg.LoginRateBurst)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.True(t, cfg.UsesDefaultAdminPassword())
	assert.False(t, cfg.TrustProxy)
	assert.Len(t, cfg.CSRFKey(), 32)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", " Production ")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("PROFILE_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DASHBOARD_REFRESH", "30s")
	t.Setenv("LOGIN_RATE_BURST", "9")
	t.Setenv("MONGO_URI", "mongodb://legacy:27017/x")
	t.Setenv("ADMIN_PASSWORD", "long-and-random")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.False(t, cfg.UsesDefaultSecret())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.DashboardRefresh)
	assert.Equal(t, 9, cfg.LoginRateBurst)
	assert.Equal(t, "mongodb://legacy:27017/x", cfg.MongoURI)
	assert.False(t, cfg.UsesDefaultAdminPassword())
	assert.True(t, cfg.TrustProxy)
}

func TestCSRFKeyFollowsProfileSecret(t *testing.T) {
	a := &Config{ProfileSecret: "one"}
	b := &Config{ProfileSecret: "two"}
	assert.Equal(t, a.CSRFKey(), (&Config{ProfileSecret: "one"}).CSRFKey())
	assert.NotEqual(t, a.CSRFKey(), b.CSRFKey())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DASHBOARD_REFRESH", "soon")
	t.Setenv("LOGIN_RATE_EVERY", "-1s")
	t.Setenv("LOGIN_RATE_BURST", "many")

	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.DashboardRefresh)
	assert.Equal(t, 2*time.Second, cfg.LoginRateEvery)
	assert.Equal(t, 5, cfg.LoginRateBurst)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	assert.NoError(t, cfg.Validate(), "demo credentials are fine outside production")

	cfg.Environment = "production"
	assert.ErrorContains(t, cfg.Validate(), "PROFILE_SECRET")

	cfg.ProfileSecret = "s3cret"
	assert.ErrorContains(t, cfg.Validate(), "ADMIN_PASSWORD")

	cfg.AdminPassword = "long-and-random"
	assert.NoError(t, cfg.Validate())
}
