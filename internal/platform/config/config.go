package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TimeOfDay is a daily trigger moment, parsed from "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24h notation.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	PosthogAPIKey string

	// Daily scheduler triggers. Payments fire first so the payout trigger
	// always sees the current cycle's obligations already generated.
	PaymentTriggerTime TimeOfDay
	PayoutTriggerTime  TimeOfDay
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("PAYMENT_TRIGGER_TIME", "00:00")
	viper.SetDefault("PAYOUT_TRIGGER_TIME", "09:00")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	if cfg.PosthogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Lifecycle events will only be logged.")
	}

	paymentAt, err := ParseTimeOfDay(viper.GetString("PAYMENT_TRIGGER_TIME"))
	if err != nil {
		return nil, fmt.Errorf("PAYMENT_TRIGGER_TIME: %w", err)
	}
	cfg.PaymentTriggerTime = paymentAt

	payoutAt, err := ParseTimeOfDay(viper.GetString("PAYOUT_TRIGGER_TIME"))
	if err != nil {
		return nil, fmt.Errorf("PAYOUT_TRIGGER_TIME: %w", err)
	}
	cfg.PayoutTriggerTime = payoutAt

	return cfg, nil
}
