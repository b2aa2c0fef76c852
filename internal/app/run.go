package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/glebarez/sqlite"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/adminapi"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/bot"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/store/gormstore"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/store/mongostore"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/sweeper"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

const (
	storeConnectTimeout = 10 * time.Second
	shutdownTimeout     = 5 * time.Second
	sweepBackoff        = 30 * time.Second
)

// Run boots the full process and blocks until the context is cancelled
// or a front-end fails.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("zap init: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	service, err := economy.NewService(
		store,
		economy.DefaultCatalog(),
		economy.Limits{
			MinDeposit:                economy.Amount(cfg.MinDepositNano),
			MinWithdrawal:             economy.Amount(cfg.MinWithdrawalNano),
			WithdrawalFeePercent:      cfg.WithdrawalFeePercent,
			WithdrawalCooldownSeconds: int64(cfg.WithdrawalCooldown.Seconds()),
		},
		func() int64 { return time.Now().UTC().Unix() },
		economy.WithOperationLogger(&zapOperationLogger{logger: logger}),
	)
	if err != nil {
		return fmt.Errorf("economy service: %w", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("telegram connect: %w", err)
	}
	logger.Info("telegram connected", zap.String("bot", botAPI.Self.UserName))

	adminServer, err := adminapi.NewServer(service, logger, adminapi.Config{
		AllowedOrigins:    cfg.AllowedOrigins,
		AdminIDs:          cfg.AdminIDs,
		SessionSigningKey: cfg.SessionSigningKey,
		SessionIssuer:     cfg.SessionIssuer,
		BackupDir:         cfg.BackupDir,
	})
	if err != nil {
		return fmt.Errorf("admin api: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go bot.New(botAPI, service, logger, cfg.DepositAddress).Run(runCtx)
	go bot.NewNotifier(botAPI, service, logger, cfg.NotifyInterval).Run(runCtx)
	go sweeper.New(service, logger, cfg.SweepInterval, sweepBackoff, cfg.RetentionDays).Run(runCtx)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: adminServer.Router(),
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("admin panel listening", zap.String("addr", cfg.ListenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-runCtx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("server shutdown error", zap.Error(shutdownErr))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func openStore(ctx context.Context, cfg Config) (economy.Store, func(), error) {
	switch cfg.StoreDriver {
	case DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
		defer cancel()
		client, err := mongo.Connect(connectCtx, mongooptions.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		store := mongostore.New(client.Database(cfg.MongoDB))
		if err := store.EnsureIndexes(connectCtx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		closeFn := func() {
			disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer disconnectCancel()
			_ = client.Disconnect(disconnectCtx)
		}
		return store, closeFn, nil
	case DriverPostgres, DriverSQLite:
		var dialector gorm.Dialector
		if cfg.StoreDriver == DriverPostgres {
			dialector = postgres.Open(cfg.PostgresDSN)
		} else {
			dialector = sqlite.Open(cfg.SQLitePath)
		}
		db, err := gorm.Open(dialector, &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", cfg.StoreDriver, err)
		}
		store := gormstore.New(db)
		if err := store.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		closeFn := func() {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
		return store, closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// zapOperationLogger forwards domain operation callbacks to structured logs.
type zapOperationLogger struct {
	logger *zap.Logger
}

func (adapter *zapOperationLogger) LogOperation(_ context.Context, entry economy.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("status", entry.Status),
	}
	if entry.UserID.String() != "" {
		fields = append(fields, zap.String("user_id", entry.UserID.String()))
	}
	if entry.AdminID.String() != "" {
		fields = append(fields, zap.String("admin_id", entry.AdminID.String()))
	}
	if entry.EntryID.String() != "" {
		fields = append(fields, zap.String("entry_id", entry.EntryID.String()))
	}
	if entry.Item != "" {
		fields = append(fields, zap.String("item", string(entry.Item)))
	}
	if entry.Amount != 0 {
		fields = append(fields, zap.String("amount_ton", entry.Amount.TON()))
	}
	if entry.Error != nil {
		fields = append(fields, zap.Error(entry.Error))
		adapter.logger.Warn("economy operation failed", fields...)
		return
	}
	adapter.logger.Info("economy operation", fields...)
}
