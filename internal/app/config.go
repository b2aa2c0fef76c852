// Package app wires the stores, the economy service, and the three
// front-ends (Telegram bot, admin HTTP panel, background sweeper) into
// one runnable process.
package app

import (
	"fmt"
	"strings"
	"time"
)

// Store driver names accepted by Config.StoreDriver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config carries everything the process needs to run.
type Config struct {
	StoreDriver string
	MongoURI    string
	MongoDB     string
	PostgresDSN string
	SQLitePath  string

	TelegramToken  string
	DepositAddress string

	AdminIDs          []string
	ListenAddr        string
	AllowedOrigins    []string
	SessionSigningKey string
	SessionIssuer     string
	BackupDir         string

	MinDepositNano       int64
	MinWithdrawalNano    int64
	WithdrawalFeePercent int64
	WithdrawalCooldown   time.Duration

	SweepInterval  time.Duration
	NotifyInterval time.Duration
	RetentionDays  int
}

// Validate ensures the configuration contains sane values and applies defaults.
func (cfg *Config) Validate() error {
	switch cfg.StoreDriver {
	case DriverMongo:
		if strings.TrimSpace(cfg.MongoURI) == "" {
			return fmt.Errorf("mongo-uri is required for the mongo driver")
		}
		if strings.TrimSpace(cfg.MongoDB) == "" {
			cfg.MongoDB = "mundo_mitico"
		}
	case DriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return fmt.Errorf("postgres-dsn is required for the postgres driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return fmt.Errorf("sqlite-path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("store-driver must be one of %s, %s, %s", DriverMongo, DriverPostgres, DriverSQLite)
	}
	if strings.TrimSpace(cfg.TelegramToken) == "" {
		return fmt.Errorf("telegram-token is required")
	}
	if strings.TrimSpace(cfg.DepositAddress) == "" {
		return fmt.Errorf("deposit-address is required")
	}
	if len(cfg.AdminIDs) == 0 {
		return fmt.Errorf("admin-ids is required")
	}
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		cfg.ListenAddr = ":8080"
	}
	if strings.TrimSpace(cfg.SessionSigningKey) == "" {
		return fmt.Errorf("session-signing-key is required")
	}
	if cfg.MinDepositNano < 0 || cfg.MinWithdrawalNano < 0 {
		return fmt.Errorf("minimum amounts must not be negative")
	}
	if cfg.WithdrawalFeePercent < 0 || cfg.WithdrawalFeePercent >= 100 {
		return fmt.Errorf("withdrawal-fee-percent must be in [0, 100)")
	}
	if cfg.WithdrawalCooldown < 0 {
		return fmt.Errorf("withdrawal-cooldown must not be negative")
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	if cfg.NotifyInterval <= 0 {
		cfg.NotifyInterval = 15 * time.Second
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 90
	}
	return nil
}

// ParseList splits a comma-separated value into trimmed non-empty items.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
