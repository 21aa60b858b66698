package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// FirmTemplate carries the firm's default account parameters. New accounts
// and upgrade spawns take their percentages from here unless overridden.
type FirmTemplate struct {
	MaxDrawdownPct       decimal.Decimal
	DailyDrawdownPct     decimal.Decimal
	Eval1ProfitTargetPct decimal.Decimal
	Eval2ProfitTargetPct decimal.Decimal
	FundedProfitSharePct decimal.Decimal
}

// ProfitTargetPctFor returns the template profit-target percentage for a
// phase name ("EVAL1"/"EVAL2"); funded accounts have no target.
func (t FirmTemplate) ProfitTargetPctFor(phase string) decimal.Decimal {
	switch phase {
	case "EVAL1":
		return t.Eval1ProfitTargetPct
	case "EVAL2":
		return t.Eval2ProfitTargetPct
	default:
		return decimal.Zero
	}
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Rate limiting; RedisURL empty means in-memory store.
	RateLimit string
	RedisURL  string

	Firm FirmTemplate
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("FIRM_MAX_DRAWDOWN_PCT", "10")
	viper.SetDefault("FIRM_DAILY_DRAWDOWN_PCT", "5")
	viper.SetDefault("FIRM_EVAL1_PROFIT_TARGET_PCT", "8")
	viper.SetDefault("FIRM_EVAL2_PROFIT_TARGET_PCT", "5")
	viper.SetDefault("FIRM_FUNDED_PROFIT_SHARE_PCT", "80")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck: viper.GetBool("ENABLE_DB_CHECK"),
		RateLimit:     viper.GetString("RATE_LIMIT"),
		RedisURL:      viper.GetString("REDIS_URL"),
	}

	var err error
	if cfg.Firm.MaxDrawdownPct, err = pctSetting("FIRM_MAX_DRAWDOWN_PCT"); err != nil {
		return nil, err
	}
	if cfg.Firm.DailyDrawdownPct, err = pctSetting("FIRM_DAILY_DRAWDOWN_PCT"); err != nil {
		return nil, err
	}
	if cfg.Firm.Eval1ProfitTargetPct, err = pctSetting("FIRM_EVAL1_PROFIT_TARGET_PCT"); err != nil {
		return nil, err
	}
	if cfg.Firm.Eval2ProfitTargetPct, err = pctSetting("FIRM_EVAL2_PROFIT_TARGET_PCT"); err != nil {
		return nil, err
	}
	if cfg.Firm.FundedProfitSharePct, err = pctSetting("FIRM_FUNDED_PROFIT_SHARE_PCT"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// pctSetting parses a viper key as a decimal percentage.
func pctSetting(key string) (decimal.Decimal, error) {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value %q for %s: %w", raw, key, err)
	}
	return d, nil
}
