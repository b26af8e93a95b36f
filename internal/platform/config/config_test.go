package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/tradebook")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ALLOW", cfg.OverpaymentPolicy)
	assert.True(t, cfg.RecordLedgerSnapshots)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "TRADE_PAYABLES", cfg.SystemAccountPayables)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OVERPAYMENT_POLICY", "clamp")
	t.Setenv("RECORD_LEDGER_SNAPSHOTS", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SYSTEM_ACCOUNT_CASH", "BANK")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "CLAMP", cfg.OverpaymentPolicy)
	assert.False(t, cfg.RecordLedgerSnapshots)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "BANK", cfg.SystemAccountCash)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown overpayment policy", "OVERPAYMENT_POLICY", "IGNORE"},
		{"non numeric port", "PORT", "http"},
		{"empty system account", "SYSTEM_ACCOUNT_SALES", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
}

func TestConfig_ServiceOptions(t *testing.T) {
	cfg := &Config{OverpaymentPolicy: "REJECT", SystemAccountSales: "SALES"}
	opts, err := cfg.ServiceOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	cfg.OverpaymentPolicy = "IGNORE"
	_, err = cfg.ServiceOptions()
	assert.Error(t, err)
}
