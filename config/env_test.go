package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("CHECKOUT_CURRENCY", "")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "")

	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "eur", cfg.CheckoutCurrency)
	assert.Equal(t, 5, cfg.LoginAttempts)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("STRIPE_TIMEOUT", "3s")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "not-a-number")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 3*time.Second, cfg.StripeTimeout)
	assert.Equal(t, 5, cfg.LoginAttempts)
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@db:5432/shop", DBHost: "ignored"}
	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.DSN())

	cfg = &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "shop", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/shop?sslmode=disable", cfg.DSN())
}

func TestValidateJWTSecret(t *testing.T) {
	cases := []struct {
		name   string
		env    string
		secret string
		ok     bool
	}{
		{"development default", "development", "secret", true},
		{"production default", "production", "secret", false},
		{"production short", "production", "short-but-not-default", false},
		{"production strong", "production", strings.Repeat("k", 32), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := (&Config{AppEnv: tc.env, JWTSecret: tc.secret}).Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrWeakJWTSecret)
		})
	}
}

func TestLoadConfigProductionWithoutSecretFailsValidation(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := LoadConfig()
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.ErrorIs(t, cfg.Validate(), ErrWeakJWTSecret)
}
