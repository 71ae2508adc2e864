package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// PayrollCreditNetPay switches the payroll accrual credit from gross
	// earnings to net pay. Defaults to false for compatibility with books
	// imported from the legacy system.
	PayrollCreditNetPay bool

	// RateLimitPerMinute caps requests per client IP per minute.
	RateLimitPerMinute int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("PAYROLL_CREDIT_NET_PAY", false)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 300)

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
	cfg.PayrollCreditNetPay = viper.GetBool("PAYROLL_CREDIT_NET_PAY")

	cfg.RateLimitPerMinute = viper.GetInt64("RATE_LIMIT_PER_MINUTE")
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 300
	}

	return cfg, nil
}
