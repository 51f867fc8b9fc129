package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort                 = "8080"
	defaultDatabaseURL          = "gigflow.db"
	defaultMongoDatabase        = "gigflow"
	defaultJWTSecret            = "change-me-jwt-secret"
	defaultJWTTTL               = "24h"
	defaultTransactionMode      = string(TransactionAuto)
	defaultHireFinalizeTimeout  = "10s"
	defaultShutdownTimeout      = "10s"
	defaultMaxGigsPerOwner      = "3"
	defaultMaxBidsPerFreelancer = "3"
	defaultMaxActiveHires       = "3"
)

// TransactionMode controls whether the hire transition runs inside a
// multi-document transaction.
type TransactionMode string

const (
	// TransactionAuto probes the backing store once at startup.
	TransactionAuto TransactionMode = "auto"
	TransactionOn   TransactionMode = "on"
	TransactionOff  TransactionMode = "off"
)

type Limits struct {
	MaxGigsPerOwner      int
	MaxBidsPerFreelancer int
	MaxActiveHires       int
}

type Config struct {
	AppEnv              string
	Port                string
	DatabaseURL         string
	MongoDatabase       string
	JWTSecret           string
	JWTTTL              time.Duration
	TransactionMode     TransactionMode
	HireFinalizeTimeout time.Duration
	ShutdownTimeout     time.Duration
	CORSAllowedOrigins  []string
	Limits              Limits
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.MongoDatabase = strings.TrimSpace(getEnv("MONGO_DATABASE", defaultMongoDatabase))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.TransactionMode = TransactionMode(strings.ToLower(strings.TrimSpace(getEnv("TRANSACTION_MODE", defaultTransactionMode))))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.HireFinalizeTimeout, err = parseDurationEnv("HIRE_FINALIZE_TIMEOUT", defaultHireFinalizeTimeout); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.Limits.MaxGigsPerOwner, err = parseIntEnv("MAX_GIGS_PER_OWNER", defaultMaxGigsPerOwner); err != nil {
		return nil, err
	}
	if cfg.Limits.MaxBidsPerFreelancer, err = parseIntEnv("MAX_BIDS_PER_FREELANCER", defaultMaxBidsPerFreelancer); err != nil {
		return nil, err
	}
	if cfg.Limits.MaxActiveHires, err = parseIntEnv("MAX_ACTIVE_HIRES", defaultMaxActiveHires); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultLimits returns the marketplace limits used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{MaxGigsPerOwner: 3, MaxBidsPerFreelancer: 3, MaxActiveHires: 3}
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.HireFinalizeTimeout <= 0 {
		return fmt.Errorf("HIRE_FINALIZE_TIMEOUT must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	switch cfg.TransactionMode {
	case TransactionAuto, TransactionOn, TransactionOff:
	default:
		return fmt.Errorf("TRANSACTION_MODE must be one of: auto, on, off")
	}
	if cfg.Limits.MaxGigsPerOwner <= 0 || cfg.Limits.MaxBidsPerFreelancer <= 0 || cfg.Limits.MaxActiveHires <= 0 {
		return fmt.Errorf("marketplace limits must be > 0")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
