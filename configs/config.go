package configs

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// CheckoutPolicy says what a checkout flow demands before an order may be
// placed. Dine-in and walk-in flows disagree on this, so it is per-flow
// config, not a global rule.
type CheckoutPolicy struct {
	RequireCustomerName bool
	RequireGuestCount   bool
	RequireTable        bool
}

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// Single configurable tax rate applied to the subtotal. No call site may
	// carry its own literal.
	TaxRate float64

	// Upstream order/table service.
	RemoteBaseURL string
	RemoteToken   string // opaque bearer credential, attached as-is
	RemoteTimeout time.Duration
	SyncInterval  time.Duration

	DineInPolicy   CheckoutPolicy
	TakeawayPolicy CheckoutPolicy
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using process environment")
	}

	return &Config{
		DBSource:  getEnv("DB_SOURCE", "pos.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    time.Duration(24) * time.Hour,

		TaxRate: getEnvFloat("POS_TAX_RATE", 0.0525),

		RemoteBaseURL: getEnv("ORDER_SERVICE_URL", "http://localhost:9000"),
		RemoteToken:   os.Getenv("ORDER_SERVICE_TOKEN"),
		RemoteTimeout: getEnvDuration("ORDER_SERVICE_TIMEOUT", 5*time.Second),
		SyncInterval:  getEnvDuration("ORDER_SYNC_INTERVAL", 10*time.Second),

		DineInPolicy: CheckoutPolicy{
			RequireCustomerName: true,
			RequireGuestCount:   true,
			RequireTable:        true,
		},
		TakeawayPolicy: CheckoutPolicy{},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warnf("invalid %s=%q, using %v", key, v, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warnf("invalid %s=%q, using %v", key, v, fallback)
	}
	return fallback
}
