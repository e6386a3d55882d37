package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Storage  StorageConfig
	DB       DatabaseConfig
	Redis    RedisConfig
	Paystack PaystackConfig
	Supplier SupplierConfig
	Admin    AdminConfig
	Agent    AgentConfig
	Worker   WorkerConfig
}

// StorageConfig selects the backing store for orders, agents, and AFA
// registrations, and locates the bundle catalog file.
type StorageConfig struct {
	Driver      string // "file" (default) or "postgres"
	DataDir     string // directory for the flat JSON files
	CatalogPath string // bundle catalog file
}

// DatabaseConfig contains PostgreSQL connection parameters, used when the
// storage driver is "postgres".
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters. Redis is optional; with
// an empty Host the catalog cache is disabled.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// PaystackConfig contains the payment collaborator credentials. With an
// empty SecretKey the payment step reports "still loading" and the webhook
// endpoint is not registered.
type PaystackConfig struct {
	SecretKey  string
	StoreEmail string
}

// SupplierConfig contains the optional fulfillment endpoint. Absence is
// treated as success with an informational message.
type SupplierConfig struct {
	URL    string
	APIKey string
}

// AdminConfig contains the single admin account. With empty values the admin
// surface is disabled.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt
	JWTSecret    string
}

// AgentConfig contains agent registration parameters.
type AgentConfig struct {
	FeeAmount float64
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	ReconcileInterval time.Duration
	ReconcileWindow   time.Duration
	FlowSessionTTL    time.Duration
	FlowSweepInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Storage
	cfg.Storage = StorageConfig{
		Driver:      getEnv("STORAGE_DRIVER", "file"),
		DataDir:     getEnv("DATA_DIR", "data"),
		CatalogPath: getEnv("BUNDLE_CATALOG_PATH", "data/bundles.json"),
	}

	// Database (postgres driver only)
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis (optional)
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Paystack
	cfg.Paystack = PaystackConfig{
		SecretKey:  getEnv("PAYSTACK_SECRET_KEY", ""),
		StoreEmail: getEnv("STORE_EMAIL", "receipt@geniusdatahub.com"),
	}

	// Supplier fulfillment (optional)
	cfg.Supplier = SupplierConfig{
		URL:    getEnv("DATA_SUPPLIER_API_URL", ""),
		APIKey: getEnv("DATA_SUPPLIER_API_KEY", ""),
	}

	// Admin (optional)
	cfg.Admin = AdminConfig{
		Email:        getEnv("ADMIN_EMAIL", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
	}

	// Agent registration
	cfg.Agent = AgentConfig{
		FeeAmount: getEnvFloat("AGENT_FEE_AMOUNT", 100),
	}

	// Workers (durations)
	var err error
	if cfg.Redis.CacheTTL, err = parseDurationEnv("CATALOG_CACHE_TTL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
	}
	if cfg.Worker.ReconcileInterval, err = parseDurationEnv("RECONCILE_INTERVAL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_INTERVAL: %w", err)
	}
	if cfg.Worker.ReconcileWindow, err = parseDurationEnv("RECONCILE_WINDOW", "24h"); err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_WINDOW: %w", err)
	}
	if cfg.Worker.FlowSessionTTL, err = parseDurationEnv("FLOW_SESSION_TTL", "30m"); err != nil {
		return nil, fmt.Errorf("invalid FLOW_SESSION_TTL: %w", err)
	}
	if cfg.Worker.FlowSweepInterval, err = parseDurationEnv("FLOW_SWEEP_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid FLOW_SWEEP_INTERVAL: %w", err)
	}

	// Driver-specific validation, kept concise and helpful.
	switch cfg.Storage.Driver {
	case "file":
		// nothing further required
	case "postgres":
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set for STORAGE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q: expected file or postgres", cfg.Storage.Driver)
	}

	// Admin requires a JWT secret when enabled.
	if cfg.Admin.Email != "" && cfg.Admin.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set when ADMIN_EMAIL is configured")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvFloat returns the value of an environment variable as a float or a default if empty/invalid.
func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
