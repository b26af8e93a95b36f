package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureDefaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string `validate:"required,numeric"`
	IsProduction       bool
	JWTSecret          string `validate:"required"`
	RateLimit          string `validate:"required"` // ulule/limiter format, e.g. "100-M"
	RedisURL           string
	CORSAllowedOrigins []string
	MigrationsPath     string `validate:"required"`

	OverpaymentPolicy     string `validate:"oneof=ALLOW REJECT CLAMP"`
	RecordLedgerSnapshots bool

	SystemAccountSales     string `validate:"required"`
	SystemAccountPurchases string `validate:"required"`
	SystemAccountCash      string `validate:"required"`
	SystemAccountPayables  string `validate:"required"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", insecureDefaultJWTSecret)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("OVERPAYMENT_POLICY", "ALLOW")
	v.SetDefault("RECORD_LEDGER_SNAPSHOTS", true)
	v.SetDefault("SYSTEM_ACCOUNT_SALES", "SALES")
	v.SetDefault("SYSTEM_ACCOUNT_PURCHASES", "PURCHASES")
	v.SetDefault("SYSTEM_ACCOUNT_CASH", "CASH")
	v.SetDefault("SYSTEM_ACCOUNT_PAYABLES", "TRADE_PAYABLES")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		RateLimit:              v.GetString("RATE_LIMIT"),
		RedisURL:               v.GetString("REDIS_URL"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		OverpaymentPolicy:      strings.ToUpper(strings.TrimSpace(v.GetString("OVERPAYMENT_POLICY"))),
		RecordLedgerSnapshots:  v.GetBool("RECORD_LEDGER_SNAPSHOTS"),
		SystemAccountSales:     strings.TrimSpace(v.GetString("SYSTEM_ACCOUNT_SALES")),
		SystemAccountPurchases: strings.TrimSpace(v.GetString("SYSTEM_ACCOUNT_PURCHASES")),
		SystemAccountCash:      strings.TrimSpace(v.GetString("SYSTEM_ACCOUNT_CASH")),
		SystemAccountPayables:  strings.TrimSpace(v.GetString("SYSTEM_ACCOUNT_PAYABLES")),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == insecureDefaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
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
