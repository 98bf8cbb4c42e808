package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	MigrationsDir string
	JWTSecret     string
	JWTExpiry     time.Duration
	UploadDir     string
	MaxUploadSize int64
	OriginURL     string

	RedisURL      string
	RedisAddr     string
	RedisPassword string
	LoginAttempts int
	LoginWindow   time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeTimeout       time.Duration
	CheckoutCurrency    string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

const (
	devJWTSecret      = "secret"
	minJWTSecretBytes = 32
)

var ErrWeakJWTSecret = errors.New("JWT_SECRET must be set to a random value of at least 32 bytes in production")

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate rejects settings that are only safe for local development.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		if c.JWTSecret == devJWTSecret {
			slog.Warn("JWT_SECRET is not set, signing tokens with the development secret")
		}
		return nil
	}
	if c.JWTSecret == devJWTSecret || len(c.JWTSecret) < minJWTSecretBytes {
		return ErrWeakJWTSecret
	}
	return nil
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using system environment variables")
	}

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8082")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "storefront"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getEnvInt("DB_MAX_CONNS", 25)),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "database/migration"),
		JWTSecret:     getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:     getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 5242880)),
		OriginURL:     os.Getenv("ORIGIN_URL"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LoginAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:   getEnvDuration("LOGIN_WINDOW", 15*time.Minute),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeTimeout:       getEnvDuration("STRIPE_TIMEOUT", 10*time.Second),
		CheckoutCurrency:    getEnv("CHECKOUT_CURRENCY", "eur"),
		CheckoutSuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/success"),
		CheckoutCancelURL:   getEnv("CHECKOUT_CANCEL_URL", "http://localhost:5173/cancel"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	slog.Info("configuration loaded", "env", cfg.AppEnv, "port", cfg.Port)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
