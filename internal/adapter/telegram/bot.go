// Package telegram drives the bot over the ledger use cases. Group members
// record adjustments by replying to a message with a signed amount; admins
// manage the rate, undo, export and reset.
package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
	"github.com/odam/tallybot/internal/infrastructure/metrics"
	"github.com/odam/tallybot/internal/usecase"
)

// LedgerService defines the ledger behavior needed by the bot.
type LedgerService interface {
	RecordAdjustment(ctx context.Context, input usecase.RecordAdjustmentInput) (*domain.Entry, error)
	UndoLast(ctx context.Context) (int64, error)
	RequestReset(ctx context.Context) (string, error)
	ConfirmReset(ctx context.Context, token string) error
	CancelReset(ctx context.Context, token string) error
	Rate(ctx context.Context) (decimal.Decimal, error)
	SetRate(ctx context.Context, rate decimal.Decimal) error
	Export(ctx context.Context) ([]*domain.Entry, error)
	Recent(ctx context.Context, limit int) ([]*domain.Entry, error)
	EntriesForUser(ctx context.Context, userID int64, limit int) ([]*domain.Entry, error)
}

// ReportService defines the report behavior needed by the bot.
type ReportService interface {
	Build(ctx context.Context, recentLimit int) (string, error)
}

// Config holds bot tuning knobs.
type Config struct {
	RecentLimit        int
	SummaryRecentLimit int
}

// Bot polls Telegram for updates and dispatches them.
type Bot struct {
	api      *tgbotapi.BotAPI
	ledgerUC LedgerService
	reportUC ReportService
	cfg      Config
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewBot creates a new Bot against the given token.
func NewBot(
	token string,
	ledgerUC LedgerService,
	reportUC ReportService,
	cfg Config,
	m *metrics.Metrics,
	logger zerolog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:      api,
		ledgerUC: ledgerUC,
		reportUC: reportUC,
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
	}, nil
}

// Run polls for updates until ctx is cancelled. Group privacy mode must be
// disabled in BotFather or plain replies never reach the bot.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info().Str("username", b.api.Self.UserName).Msg("telegram bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.metrics.TelegramUpdates.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message == nil || update.Message.Text == "":
		return
	case update.Message.IsCommand():
		b.metrics.TelegramUpdates.WithLabelValues("command").Inc()
		b.handleCommand(ctx, update.Message)
	default:
		b.metrics.TelegramUpdates.WithLabelValues("message").Inc()
		b.handleAdjustment(ctx, update.Message)
	}
}

// isAdmin reports whether the user is an administrator or the creator of the
// chat. Lookup failures count as not admin.
func (b *Bot) isAdmin(chatID, userID int64) (bool, error) {
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		return false, err
	}
	return member.Status == "administrator" || member.Status == "creator", nil
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func (b *Bot) sendReport(ctx context.Context, chatID int64, recentLimit int) {
	text, err := b.reportUC.Build(ctx, recentLimit)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to build report")
		return
	}
	b.reply(chatID, text)
}

// displayNameFor mirrors how group members are labelled in the report:
// username when set, otherwise first and last name joined.
func displayNameFor(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}

func commandArgs(msg *tgbotapi.Message) []string {
	return strings.Fields(msg.CommandArguments())
}
