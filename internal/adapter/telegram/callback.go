package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/odam/tallybot/internal/domain"
)

const (
	resetActionConfirm = "confirm"
	resetActionCancel  = "cancel"
)

// resetCallbackData packs the action and the reset token into the inline
// button payload so a confirmation always targets the reset that produced it.
func resetCallbackData(action, token string) string {
	return "reset:" + action + ":" + token
}

func parseResetCallback(data string) (action, token string, ok bool) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 || parts[0] != "reset" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn().Err(err).Msg("failed to answer callback query")
	}

	action, token, ok := parseResetCallback(query.Data)
	if !ok || query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch action {
	case resetActionCancel:
		if err := b.ledgerUC.CancelReset(ctx, token); err != nil && !errors.Is(err, domain.ErrUnknownResetToken) {
			b.logger.Error().Err(err).Msg("failed to cancel reset")
		}
		b.editOrSend(chatID, messageID, "✅ Reset cancelled.")

	case resetActionConfirm:
		admin, err := b.isAdmin(chatID, query.From.ID)
		if err != nil {
			b.editOrSend(chatID, messageID, "Permission check failed. Reset aborted.")
			return
		}
		if !admin {
			b.editOrSend(chatID, messageID, "Only admins can confirm reset.")
			return
		}

		if err := b.ledgerUC.ConfirmReset(ctx, token); err != nil {
			if errors.Is(err, domain.ErrUnknownResetToken) {
				b.editOrSend(chatID, messageID, "No pending reset. Use /reset first.")
				return
			}
			b.editOrSend(chatID, messageID, "❌ Failed to reset ledger: "+err.Error())
			return
		}

		b.editOrSend(chatID, messageID, "🔄 Ledger has been reset. All entries cleared.")
		b.sendReport(ctx, chatID, b.cfg.RecentLimit)
	}
}

func (b *Bot) editOrSend(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.reply(chatID, text)
	}
}
