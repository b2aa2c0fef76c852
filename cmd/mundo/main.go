package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/app"
)

const (
	flagStoreDriver        = "store-driver"
	flagMongoURI           = "mongo-uri"
	flagMongoDB            = "mongo-db"
	flagPostgresDSN        = "postgres-dsn"
	flagSQLitePath         = "sqlite-path"
	flagTelegramToken      = "telegram-token"
	flagDepositAddress     = "deposit-address"
	flagAdminIDs           = "admin-ids"
	flagListenAddr         = "listen-addr"
	flagAllowedOrigins     = "allowed-origins"
	flagSessionSigningKey  = "session-signing-key"
	flagSessionIssuer      = "session-issuer"
	flagBackupDir          = "backup-dir"
	flagMinDeposit         = "min-deposit-nano"
	flagMinWithdrawal      = "min-withdrawal-nano"
	flagWithdrawalFee      = "withdrawal-fee-percent"
	flagWithdrawalCooldown = "withdrawal-cooldown"
	flagSweepInterval      = "sweep-interval"
	flagNotifyInterval     = "notify-interval"
	flagRetentionDays      = "retention-days"
	envPrefix              = "MUNDO"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mundo: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := app.Config{}
	cmd := &cobra.Command{
		Use:           "mundo",
		Short:         "Mundo Mítico economy bot and admin panel",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	}

	cmd.Flags().String(flagStoreDriver, app.DriverMongo, "storage driver: mongo, postgres or sqlite")
	cmd.Flags().String(flagMongoURI, "", "MongoDB connection URI (required for mongo)")
	cmd.Flags().String(flagMongoDB, "mundo_mitico", "MongoDB database name")
	cmd.Flags().String(flagPostgresDSN, "", "PostgreSQL DSN (required for postgres)")
	cmd.Flags().String(flagSQLitePath, "", "SQLite file path (required for sqlite)")
	cmd.Flags().String(flagTelegramToken, "", "Telegram bot token (required)")
	cmd.Flags().String(flagDepositAddress, "", "TON address shown for deposits (required)")
	cmd.Flags().String(flagAdminIDs, "", "comma-separated Telegram ids allowed on the admin panel (required)")
	cmd.Flags().String(flagListenAddr, ":8080", "admin panel HTTP listen address")
	cmd.Flags().String(flagAllowedOrigins, "", "comma-separated list of allowed CORS origins")
	cmd.Flags().String(flagSessionSigningKey, "", "admin session JWT signing key (required)")
	cmd.Flags().String(flagSessionIssuer, "", "admin session JWT issuer")
	cmd.Flags().String(flagBackupDir, "", "directory for account export backups")
	cmd.Flags().Int64(flagMinDeposit, 100_000_000, "minimum deposit in nanotons")
	cmd.Flags().Int64(flagMinWithdrawal, 500_000_000, "minimum withdrawal in nanotons")
	cmd.Flags().Int64(flagWithdrawalFee, 2, "withdrawal fee percent")
	cmd.Flags().Duration(flagWithdrawalCooldown, time.Minute, "minimum spacing between withdrawal requests per account")
	cmd.Flags().Duration(flagSweepInterval, time.Hour, "yield/expiry sweep interval")
	cmd.Flags().Duration(flagNotifyInterval, 15*time.Second, "outbox notification poll interval")
	cmd.Flags().Int(flagRetentionDays, 90, "audit log retention in days")

	return cmd
}

func loadConfig(cmd *cobra.Command, cfg *app.Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flagNames := []string{
		flagStoreDriver, flagMongoURI, flagMongoDB, flagPostgresDSN, flagSQLitePath,
		flagTelegramToken, flagDepositAddress, flagAdminIDs, flagListenAddr,
		flagAllowedOrigins, flagSessionSigningKey, flagSessionIssuer, flagBackupDir,
		flagMinDeposit, flagMinWithdrawal, flagWithdrawalFee, flagWithdrawalCooldown,
		flagSweepInterval, flagNotifyInterval, flagRetentionDays,
	}
	for _, flagName := range flagNames {
		if err := v.BindPFlag(flagName, cmd.Flags().Lookup(flagName)); err != nil {
			return err
		}
	}

	cfg.StoreDriver = strings.TrimSpace(v.GetString(flagStoreDriver))
	cfg.MongoURI = strings.TrimSpace(v.GetString(flagMongoURI))
	cfg.MongoDB = strings.TrimSpace(v.GetString(flagMongoDB))
	cfg.PostgresDSN = strings.TrimSpace(v.GetString(flagPostgresDSN))
	cfg.SQLitePath = strings.TrimSpace(v.GetString(flagSQLitePath))
	cfg.TelegramToken = strings.TrimSpace(v.GetString(flagTelegramToken))
	cfg.DepositAddress = strings.TrimSpace(v.GetString(flagDepositAddress))
	cfg.AdminIDs = app.ParseList(v.GetString(flagAdminIDs))
	cfg.ListenAddr = strings.TrimSpace(v.GetString(flagListenAddr))
	cfg.AllowedOrigins = app.ParseList(v.GetString(flagAllowedOrigins))
	cfg.SessionSigningKey = v.GetString(flagSessionSigningKey)
	cfg.SessionIssuer = strings.TrimSpace(v.GetString(flagSessionIssuer))
	cfg.BackupDir = strings.TrimSpace(v.GetString(flagBackupDir))
	cfg.MinDepositNano = v.GetInt64(flagMinDeposit)
	cfg.MinWithdrawalNano = v.GetInt64(flagMinWithdrawal)
	cfg.WithdrawalFeePercent = v.GetInt64(flagWithdrawalFee)
	cfg.WithdrawalCooldown = v.GetDuration(flagWithdrawalCooldown)
	cfg.SweepInterval = v.GetDuration(flagSweepInterval)
	cfg.NotifyInterval = v.GetDuration(flagNotifyInterval)
	cfg.RetentionDays = v.GetInt(flagRetentionDays)

	return cfg.Validate()
}
