package bot

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

const (
	defaultNotifyInterval = 15 * time.Second
	notifyBatchSize       = 50
)

// Notifier drains the outbox and delivers events as Telegram messages.
// An event is marked delivered only after the send succeeds, so a crash
// between poll and send re-delivers rather than drops.
type Notifier struct {
	api      *tgbotapi.BotAPI
	service  *economy.Service
	logger   *zap.Logger
	interval time.Duration
}

// NewNotifier wires an outbox drainer over the same Telegram client.
func NewNotifier(api *tgbotapi.BotAPI, service *economy.Service, logger *zap.Logger, interval time.Duration) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = defaultNotifyInterval
	}
	return &Notifier{
		api:      api,
		service:  service,
		logger:   logger,
		interval: interval,
	}
}

// Run polls until the context is cancelled.
func (notifier *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(notifier.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			notifier.drain(ctx)
		}
	}
}

func (notifier *Notifier) drain(ctx context.Context) {
	events, err := notifier.service.PendingEvents(ctx, notifyBatchSize)
	if err != nil {
		notifier.logger.Warn("outbox poll failed", zap.Error(err))
		return
	}
	for _, event := range events {
		chatID, err := strconv.ParseInt(event.UserID.String(), 10, 64)
		if err != nil {
			notifier.logger.Warn("outbox event with non-numeric user id",
				zap.String("event_id", event.EventID),
				zap.String("user_id", event.UserID.String()))
			if err := notifier.service.MarkEventDelivered(ctx, event.EventID); err != nil {
				notifier.logger.Warn("mark delivered failed", zap.Error(err))
			}
			continue
		}
		if _, err := notifier.api.Send(tgbotapi.NewMessage(chatID, event.Message)); err != nil {
			notifier.logger.Warn("notification send failed",
				zap.String("event_id", event.EventID),
				zap.Error(err))
			continue
		}
		if err := notifier.service.MarkEventDelivered(ctx, event.EventID); err != nil {
			notifier.logger.Warn("mark delivered failed",
				zap.String("event_id", event.EventID),
				zap.Error(err))
		}
	}
}
