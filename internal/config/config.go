package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Session  SessionConfig
	Cookie   CookieConfig
	Admin    AdminConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	Secret          string
	LifetimeSeconds int
	PermanentDays   int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// AdminConfig holds the seeded admin account credentials
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Session:  loadSessionConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Admin:    loadAdminConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "novacapital_db"),
	}
}

// loadSessionConfig loads session config based on mode
func loadSessionConfig(mode string) SessionConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	// Default lifetime 1 hour; "remember me" sessions last 30 days
	lifetime, _ := strconv.Atoi(getEnv("SESSION_LIFETIME_SECONDS", "3600"))
	permanentDays, _ := strconv.Atoi(getEnv("SESSION_PERMANENT_DAYS", "30"))

	return SessionConfig{
		Secret:          getEnv(prefix+"SESSION_SECRET", "default_session_secret"),
		LifetimeSeconds: lifetime,
		PermanentDays:   permanentDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadAdminConfig loads the seeded admin account credentials
func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Name:     getEnv("ADMIN_NAME", "Administrator"),
		Email:    getEnv("ADMIN_EMAIL", "admin@novacapital.com"),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://credito.novacapital.com"
	}
	return origins
}
