package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Port               string
	AppEnv             string
	AppBaseURL         string
	StoreDriver        string
	MongoURI           string
	MongoDBName        string
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	CookieSecure       bool
	CORSAllowedOrigins []string
	RateLimitPerSecond float64
	RedisURL           string
	ListingCacheTTL    time.Duration

	EmailHost        string
	EmailPort        string
	EmailUsername    string
	EmailAppPassword string
	EmailFrom        string

	GoogleClientID     string
	GoogleClientSecret string

	// Bootstrap admin created at startup when its email is unused.
	AdminName     string
	AdminEmail    string
	AdminPhone    string
	AdminPassword string
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "5000"),
		AppEnv:             getEnv("APP_ENV", "production"),
		AppBaseURL:         getEnv("APP_BASE_URL", "http://localhost:5000"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBName:        getEnv("MONGODB_DB_NAME", "mangocropconnect"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTokenExpiry:  time.Hour * time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRY_HOURS", 720)), // 30 days
		CookieSecure:       getEnvAsBool("COOKIE_SECURE", false),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		RedisURL:           getEnv("REDIS_URL", ""),
		ListingCacheTTL:    time.Minute * time.Duration(getEnvAsInt("LISTING_CACHE_TTL_MINUTES", 5)),
		EmailHost:          getEnv("EMAIL_HOST", ""),
		EmailPort:          getEnv("EMAIL_PORT", "587"),
		EmailUsername:      getEnv("EMAIL_USERNAME", ""),
		EmailAppPassword:   getEnv("EMAIL_APP_PASSWORD", ""),
		EmailFrom:          getEnv("EMAIL_FROM", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		AdminName:          getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPhone:         getEnv("ADMIN_PHONE", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
	}
}

// GetAppEnv returns the deployment environment name.
func (c *Config) GetAppEnv() string {
	return c.AppEnv
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

func (c *Config) GetJWTSecret() string {
	return c.JWTSecret
}

// GetAccessTokenExpiry returns the lifetime of access tokens and the session cookie.
func (c *Config) GetAccessTokenExpiry() time.Duration {
	return c.AccessTokenExpiry
}

func (c *Config) GetCookieSecure() bool {
	return c.CookieSecure
}

func (c *Config) GetListingCacheTTL() time.Duration {
	return c.ListingCacheTTL
}

// MailEnabled reports whether moderation notices can be sent.
func (c *Config) MailEnabled() bool {
	return c.EmailHost != ""
}

// OAuthEnabled reports whether Google sign-in is configured.
func (c *Config) OAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// AdminSeedEnabled reports whether a bootstrap admin account is configured.
func (c *Config) AdminSeedEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}

// comma separated
func getEnvAsList(name string, fallback []string) []string {
	valStr := getEnv(name, "")
	if valStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
