package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	RunAddress  string        // address and port the server listens on
	DatabaseURI string        // database connection URI
	JWTSecret   string        // JWT signing key
	JWTTokenTTL time.Duration // JWT token lifetime
	LogLevel    string        // logging level

	// CORS
	AllowedOrigins []string // origins allowed by the browser storefront

	// Settlement worker configuration
	SettlementWorkers      int           // number of workers
	SettlementQueueSize    int           // order queue size
	SettlementScanInterval time.Duration // unsettled-order scan interval

	// Validation
	MinPasswordLength int // minimum password length at registration
}

// Load reads configuration from flags and environment variables.
// Precedence: env variables > flags > defaults. A local .env file is
// picked up when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		JWTTokenTTL:            24 * time.Hour,
		LogLevel:               "info",
		AllowedOrigins:         []string{"*"},
		SettlementWorkers:      2,
		SettlementQueueSize:    100,
		SettlementScanInterval: 15 * time.Second,
		MinPasswordLength:      6,
	}

	flag.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.Parse()

	if envRunAddr, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.RunAddress = envRunAddr
	}

	if envDBURI, ok := os.LookupEnv("DATABASE_URI"); ok {
		cfg.DatabaseURI = envDBURI
	}

	// JWT secret only comes from the environment, never from flags
	if envJWTSecret, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.JWTSecret = envJWTSecret
	} else {
		cfg.JWTSecret = "default-secret-key-change-in-production"
	}

	if envLogLevel, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = envLogLevel
	}

	if envOrigin, ok := os.LookupEnv("ALLOWED_ORIGIN"); ok && envOrigin != "" {
		cfg.AllowedOrigins = []string{envOrigin}
	}

	if envWorkers, ok := os.LookupEnv("SETTLEMENT_WORKERS"); ok {
		if n, err := strconv.Atoi(envWorkers); err == nil && n > 0 {
			cfg.SettlementWorkers = n
		}
	}

	if envQueueSize, ok := os.LookupEnv("SETTLEMENT_QUEUE_SIZE"); ok {
		if n, err := strconv.Atoi(envQueueSize); err == nil && n > 0 {
			cfg.SettlementQueueSize = n
		}
	}

	if envScanInterval, ok := os.LookupEnv("SETTLEMENT_SCAN_INTERVAL"); ok {
		if interval, err := time.ParseDuration(envScanInterval); err == nil && interval > 0 {
			cfg.SettlementScanInterval = interval
		}
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
	}

	return cfg, nil
}
