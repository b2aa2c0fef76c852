// Package bot is the Telegram front-end: thin command glue over the
// economy service. Ledger correctness lives in pkg/economy; this package
// only parses commands and renders generic replies.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

const (
	replyGenericError  = "⚠️ Algo salió mal. Inténtalo de nuevo en unos minutos."
	replyInsufficient  = "❌ Saldo insuficiente."
	replyUnknownItem   = "❌ Esa criatura no existe en el reino."
	replyEntryResolved = "ℹ️ Esa solicitud ya fue resuelta."
	replyEntryUnknown  = "❌ No encontré esa solicitud."
)

// Bot polls Telegram updates and dispatches commands.
type Bot struct {
	api            *tgbotapi.BotAPI
	service        *economy.Service
	logger         *zap.Logger
	depositAddress string
}

// New wires the bot front-end.
func New(api *tgbotapi.BotAPI, service *economy.Service, logger *zap.Logger, depositAddress string) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		api:            api,
		service:        service,
		logger:         logger,
		depositAddress: depositAddress,
	}
}

// Run blocks on the update channel until the context is cancelled.
func (bot *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			bot.api.StopReceivingUpdates()
			return
		case update, open := <-updates:
			if !open {
				return
			}
			if update.Message == nil || update.Message.From == nil || !update.Message.IsCommand() {
				continue
			}
			bot.handleCommand(ctx, update.Message)
		}
	}
}

func (bot *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	userID, err := economy.NewUserID(fmt.Sprintf("%d", message.From.ID))
	if err != nil {
		return
	}
	args := strings.Fields(message.CommandArguments())

	var reply string
	switch message.Command() {
	case "start":
		reply = bot.handleStart(ctx, userID, args)
	case "saldo":
		reply = bot.handleBalance(ctx, userID)
	case "tienda":
		reply = bot.handleShop()
	case "comprar":
		reply = bot.handlePurchase(ctx, userID, args)
	case "depositar":
		reply = bot.handleDeposit(ctx, userID, args)
	case "retirar":
		reply = bot.handleWithdraw(ctx, userID, args)
	case "cancelar":
		reply = bot.handleCancel(ctx, userID, args)
	case "estado":
		reply = bot.handleStatus(ctx, userID, args)
	case "invocadores":
		reply = bot.handleReferrals(ctx, userID)
	default:
		reply = "ℹ️ Comando desconocido. Usa /start para ver el menú."
	}
	bot.send(message.Chat.ID, reply)
}

func (bot *Bot) handleStart(ctx context.Context, userID economy.UserID, args []string) string {
	referrerToken := ""
	if len(args) > 0 {
		referrerToken = args[0]
	}
	if _, err := bot.service.EnsureAccount(ctx, userID, referrerToken); err != nil {
		bot.logger.Error("ensure account failed", zap.Error(err))
		return replyGenericError
	}
	return "🏰 Bienvenido a Mundo Mítico.\n\n" +
		"/saldo — tu balance e inventario\n" +
		"/tienda — criaturas disponibles\n" +
		"/comprar <criatura> <cantidad>\n" +
		"/depositar <cantidad_TON> <hash>\n" +
		"/retirar <cantidad_TON> <dirección>\n" +
		"/cancelar <solicitud>\n" +
		"/estado <solicitud>\n" +
		"/invocadores — tus referidos"
}

func (bot *Bot) handleBalance(ctx context.Context, userID economy.UserID) string {
	balance, err := bot.service.Balance(ctx, userID)
	if err != nil {
		bot.logger.Error("balance failed", zap.Error(err))
		return replyGenericError
	}
	inventory, err := bot.service.Inventory(ctx, userID)
	if err != nil {
		bot.logger.Error("inventory failed", zap.Error(err))
		return replyGenericError
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "💰 Saldo: %s TON\n", balance.TON())
	if len(inventory) == 0 {
		builder.WriteString("🐾 Aún no tienes criaturas.")
		return builder.String()
	}
	builder.WriteString("🐾 Inventario:\n")
	for _, kind := range bot.service.Catalog().Kinds() {
		if count := inventory[kind]; count > 0 {
			descriptor, err := bot.service.Catalog().Lookup(kind)
			if err != nil {
				continue
			}
			fmt.Fprintf(&builder, "  %s ×%d\n", descriptor.Name, count)
		}
	}
	return builder.String()
}

func (bot *Bot) handleShop() string {
	var builder strings.Builder
	builder.WriteString("🏪 Tienda mítica:\n")
	for _, kind := range bot.service.Catalog().Kinds() {
		descriptor, err := bot.service.Catalog().Lookup(kind)
		if err != nil {
			continue
		}
		fmt.Fprintf(&builder, "  %s (%s) — %s TON, rinde %s TON/día\n",
			descriptor.Name, kind, descriptor.Price.TON(), descriptor.DailyYield.TON())
	}
	builder.WriteString("\nCompra con /comprar <criatura> <cantidad>")
	return builder.String()
}

func (bot *Bot) handlePurchase(ctx context.Context, userID economy.UserID, args []string) string {
	if len(args) != 2 {
		return "Formato: /comprar <criatura> <cantidad>"
	}
	qty, err := parseQty(args[1])
	if err != nil {
		return "Formato: /comprar <criatura> <cantidad>"
	}
	total, err := bot.service.Purchase(ctx, userID, economy.ItemKind(args[0]), qty)
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Compra realizada por %s TON.", total.TON())
	case errors.Is(err, economy.ErrInsufficientBalance):
		return replyInsufficient
	case errors.Is(err, economy.ErrInvalidItemKind):
		return replyUnknownItem
	case errors.Is(err, economy.ErrInvalidQuantity):
		return "Formato: /comprar <criatura> <cantidad>"
	default:
		bot.logger.Error("purchase failed", zap.Error(err))
		return replyGenericError
	}
}

func (bot *Bot) handleDeposit(ctx context.Context, userID economy.UserID, args []string) string {
	if len(args) != 2 {
		return fmt.Sprintf("Envía TON a:\n`%s`\n\nLuego: /depositar <cantidad_TON> <hash>", bot.depositAddress)
	}
	amountNano, err := ParseTON(args[0])
	if err != nil {
		return "❌ Cantidad inválida. Ejemplo: /depositar 1.500 <hash>"
	}
	amount, err := economy.NewPositiveAmount(amountNano)
	if err != nil {
		return "❌ Cantidad inválida. Ejemplo: /depositar 1.500 <hash>"
	}
	entry, err := bot.service.RequestDeposit(ctx, userID, amount, "TON", args[1])
	switch {
	case err == nil:
		return fmt.Sprintf("📥 Depósito registrado. Id: %s\nUn guardián lo revisará pronto.", entry.EntryID)
	case errors.Is(err, economy.ErrInvalidAmount):
		return "❌ Cantidad por debajo del mínimo de depósito."
	default:
		bot.logger.Error("deposit request failed", zap.Error(err))
		return replyGenericError
	}
}

func (bot *Bot) handleWithdraw(ctx context.Context, userID economy.UserID, args []string) string {
	if len(args) != 2 {
		return "Formato: /retirar <cantidad_TON> <dirección>"
	}
	amountNano, err := ParseTON(args[0])
	if err != nil {
		return "❌ Cantidad inválida. Ejemplo: /retirar 2.000 <dirección>"
	}
	amount, err := economy.NewPositiveAmount(amountNano)
	if err != nil {
		return "❌ Cantidad inválida. Ejemplo: /retirar 2.000 <dirección>"
	}
	entry, err := bot.service.RequestWithdrawal(ctx, userID, amount, args[1])
	switch {
	case err == nil:
		return fmt.Sprintf("📤 Retiro solicitado. Id: %s\nReservado: %s TON. Comisión: %s TON. Recibirás %s TON.",
			entry.EntryID, entry.Amount.TON(), entry.Fee.TON(), (entry.Amount - entry.Fee).TON())
	case errors.Is(err, economy.ErrInsufficientBalance):
		return replyInsufficient
	case errors.Is(err, economy.ErrInvalidAmount):
		return "❌ Cantidad por debajo del mínimo de retiro."
	case errors.Is(err, economy.ErrCooldownActive):
		return "⏳ Espera un momento antes de solicitar otro retiro."
	default:
		bot.logger.Error("withdrawal request failed", zap.Error(err))
		return replyGenericError
	}
}

func (bot *Bot) handleCancel(ctx context.Context, userID economy.UserID, args []string) string {
	if len(args) != 1 {
		return "Formato: /cancelar <solicitud>"
	}
	entryID, err := economy.NewEntryID(args[0])
	if err != nil {
		return replyEntryUnknown
	}
	err = bot.service.CancelWithdrawal(ctx, userID, entryID)
	switch {
	case err == nil:
		return "↩️ Retiro cancelado; el saldo volvió a tu cuenta."
	case errors.Is(err, economy.ErrEntryAlreadyResolved):
		return replyEntryResolved
	case errors.Is(err, economy.ErrEntryNotFound), errors.Is(err, economy.ErrNotEntryOwner):
		return replyEntryUnknown
	default:
		bot.logger.Error("cancel failed", zap.Error(err))
		return replyGenericError
	}
}

func (bot *Bot) handleStatus(ctx context.Context, userID economy.UserID, args []string) string {
	if len(args) != 1 {
		return "Formato: /estado <solicitud>"
	}
	entryID, err := economy.NewEntryID(args[0])
	if err != nil {
		return replyEntryUnknown
	}
	entry, err := bot.service.EntryStatus(ctx, userID, entryID)
	switch {
	case err == nil:
		return fmt.Sprintf("📋 %s de %s TON — estado: %s", entry.Kind, entry.Amount.TON(), entry.Status)
	case errors.Is(err, economy.ErrEntryNotFound), errors.Is(err, economy.ErrNotEntryOwner):
		return replyEntryUnknown
	default:
		bot.logger.Error("status failed", zap.Error(err))
		return replyGenericError
	}
}

func (bot *Bot) handleReferrals(ctx context.Context, userID economy.UserID) string {
	total, err := bot.service.CountReferrals(ctx, userID)
	if err != nil {
		bot.logger.Error("count referrals failed", zap.Error(err))
		return replyGenericError
	}
	active, err := bot.service.CountActiveReferrals(ctx, userID)
	if err != nil {
		bot.logger.Error("count active referrals failed", zap.Error(err))
		return replyGenericError
	}
	return fmt.Sprintf("🧙 Invocadores reclutados: %d (activos: %d)\n"+
		"Comparte tu enlace: t.me/MundoMiticoBot?start=%s", total, active, userID)
}

func (bot *Bot) send(chatID int64, text string) {
	message := tgbotapi.NewMessage(chatID, text)
	if _, err := bot.api.Send(message); err != nil {
		bot.logger.Warn("telegram send failed", zap.Error(err))
	}
}
