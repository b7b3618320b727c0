package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
	"github.com/odam/tallybot/internal/export"
	"github.com/odam/tallybot/internal/report"
	"github.com/odam/tallybot/internal/usecase"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "rate":
		b.cmdRate(ctx, msg)
	case "summary":
		b.sendReport(ctx, msg.Chat.ID, b.cfg.SummaryRecentLimit)
	case "ledger":
		b.cmdLedger(ctx, msg)
	case "myentries":
		b.cmdMyEntries(ctx, msg)
	case "add":
		b.cmdAdd(ctx, msg)
	case "undo":
		b.cmdUndo(ctx, msg)
	case "export":
		b.cmdExport(ctx, msg)
	case "reset":
		b.cmdReset(ctx, msg)
	}
}

// handleAdjustment records a signed amount sent as a reply to the target
// user's message. Anything that is not exactly one signed token is ignored.
func (b *Bot) handleAdjustment(ctx context.Context, msg *tgbotapi.Message) {
	if msg.ReplyToMessage == nil {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if !domain.MatchesSignedToken(text) {
		return
	}

	admin, err := b.isAdmin(msg.Chat.ID, msg.From.ID)
	if err != nil {
		b.reply(msg.Chat.ID, "Permission check failed. Only admins can record payments.")
		return
	}
	if !admin {
		b.reply(msg.Chat.ID, "Only admins can record payments.")
		return
	}

	target := msg.ReplyToMessage.From
	entry, err := b.ledgerUC.RecordAdjustment(ctx, usecase.RecordAdjustmentInput{
		RawToken:    text,
		UserID:      target.ID,
		DisplayName: displayNameFor(target),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedToken) && !errors.Is(err, domain.ErrZeroMagnitude) {
			b.logger.Error().Err(err).Msg("failed to record adjustment")
		}
		return
	}

	actor := msg.From.FirstName
	if actor == "" {
		actor = msg.From.UserName
	}

	b.reply(msg.Chat.ID, fmt.Sprintf("💸 %s\n%s%s\n\n%s: %s = %s USDT",
		actor,
		report.SignOf(entry.Primary), report.Grouped(entry.Primary.Abs()),
		entry.DisplayName, report.Grouped(entry.Primary), report.Plain(entry.Secondary)))

	b.sendReport(ctx, msg.Chat.ID, b.cfg.RecentLimit)
}

func (b *Bot) cmdRate(ctx context.Context, msg *tgbotapi.Message) {
	if !b.requireAdmin(msg, "Only admins can change rate.") {
		return
	}

	args := commandArgs(msg)
	if len(args) == 0 {
		rate, err := b.ledgerUC.Rate(ctx)
		if err != nil {
			b.logger.Error().Err(err).Msg("failed to get rate")
			return
		}
		b.reply(msg.Chat.ID, "Current rate: "+rate.String())
		return
	}

	rate, err := decimal.NewFromString(args[0])
	if err != nil || !rate.IsPositive() {
		b.reply(msg.Chat.ID, "Provide a valid positive rate. Example: /rate 93.5")
		return
	}

	if err := b.ledgerUC.SetRate(ctx, rate); err != nil {
		b.reply(msg.Chat.ID, "Provide a valid positive rate. Example: /rate 93.5")
		return
	}

	b.reply(msg.Chat.ID, "Rate updated to "+rate.String())
}

func (b *Bot) cmdLedger(ctx context.Context, msg *tgbotapi.Message) {
	entries, err := b.ledgerUC.Recent(ctx, listLimit(commandArgs(msg), b.cfg.RecentLimit))
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to list entries")
		return
	}
	if len(entries) == 0 {
		b.reply(msg.Chat.ID, "No entries yet.")
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", e.ID, e.DisplayName, entryLine(e)))
	}
	b.reply(msg.Chat.ID, strings.Join(lines, "\n"))
}

func (b *Bot) cmdMyEntries(ctx context.Context, msg *tgbotapi.Message) {
	entries, err := b.ledgerUC.EntriesForUser(ctx, msg.From.ID, listLimit(commandArgs(msg), b.cfg.RecentLimit))
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to list user entries")
		return
	}
	if len(entries) == 0 {
		b.reply(msg.Chat.ID, "You have no entries yet.")
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s", e.ID, entryLine(e)))
	}
	b.reply(msg.Chat.ID, strings.Join(lines, "\n"))
}

// cmdAdd records an amount manually, either as a reply (/add 3986) or by
// naming the user (/add username 3986). Named adds have no Telegram user
// behind them, so they are stored against user id 0.
func (b *Bot) cmdAdd(ctx context.Context, msg *tgbotapi.Message) {
	if !b.requireAdmin(msg, "Only admins can use /add.") {
		return
	}

	args := commandArgs(msg)

	if msg.ReplyToMessage != nil && len(args) == 1 {
		target := msg.ReplyToMessage.From
		entry, err := b.recordManual(ctx, args[0], target.ID, displayNameFor(target))
		if err != nil {
			b.reply(msg.Chat.ID, "Invalid amount. Example as reply: /add 3986")
			return
		}
		b.replyAdded(msg.Chat.ID, entry)
		return
	}

	if len(args) == 2 {
		entry, err := b.recordManual(ctx, args[1], 0, args[0])
		if err != nil {
			b.reply(msg.Chat.ID, "Invalid amount. Usage: /add username amount")
			return
		}
		b.replyAdded(msg.Chat.ID, entry)
		return
	}

	b.reply(msg.Chat.ID, "Usage: reply to user with /add 3986  OR  /add username 3986")
}

func (b *Bot) recordManual(ctx context.Context, raw string, userID int64, displayName string) (*domain.Entry, error) {
	token := strings.TrimSpace(raw)
	if !strings.HasPrefix(token, "+") && !strings.HasPrefix(token, "-") {
		token = "+" + token
	}

	return b.ledgerUC.RecordAdjustment(ctx, usecase.RecordAdjustmentInput{
		RawToken:    token,
		UserID:      userID,
		DisplayName: displayName,
	})
}

func (b *Bot) replyAdded(chatID int64, entry *domain.Entry) {
	b.reply(chatID, fmt.Sprintf("Added for %s: %s = %s USDT",
		entry.DisplayName, report.Grouped(entry.Primary), report.Plain(entry.Secondary)))
}

func (b *Bot) cmdUndo(ctx context.Context, msg *tgbotapi.Message) {
	if !b.requireAdmin(msg, "Only admins can undo.") {
		return
	}

	id, err := b.ledgerUC.UndoLast(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoEntries) {
			b.reply(msg.Chat.ID, "No entries to delete.")
			return
		}
		b.logger.Error().Err(err).Msg("failed to undo last entry")
		return
	}

	b.reply(msg.Chat.ID, fmt.Sprintf("Last entry (id=%d) deleted.", id))
}

func (b *Bot) cmdExport(ctx context.Context, msg *tgbotapi.Message) {
	if !b.requireAdmin(msg, "Only admins can export.") {
		return
	}

	entries, err := b.ledgerUC.Export(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to export entries")
		return
	}
	if len(entries) == 0 {
		b.reply(msg.Chat.ID, "No entries to export.")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, entries); err != nil {
		b.logger.Error().Err(err).Msg("failed to serialize export")
		return
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  export.Filename(time.Now()),
		Bytes: buf.Bytes(),
	})
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error().Err(err).Msg("failed to send export")
	}
}

func (b *Bot) cmdReset(ctx context.Context, msg *tgbotapi.Message) {
	if !b.requireAdmin(msg, "Only admins can reset.") {
		return
	}

	token, err := b.ledgerUC.RequestReset(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to request reset")
		return
	}

	confirm := tgbotapi.NewMessage(msg.Chat.ID,
		"⚠️ You are about to delete ALL ledger entries. This cannot be undone.\n\nIf you want a copy, use /export first. Proceed?")
	confirm.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes — reset", resetCallbackData(resetActionConfirm, token)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", resetCallbackData(resetActionCancel, token)),
		),
	)
	if _, err := b.api.Send(confirm); err != nil {
		b.logger.Error().Err(err).Msg("failed to send reset confirmation")
	}
}

func (b *Bot) requireAdmin(msg *tgbotapi.Message, denied string) bool {
	admin, err := b.isAdmin(msg.Chat.ID, msg.From.ID)
	if err != nil {
		b.reply(msg.Chat.ID, "Permission check failed.")
		return false
	}
	if !admin {
		b.reply(msg.Chat.ID, denied)
		return false
	}
	return true
}

// entryLine renders one listed entry: signed grouped INR, unsigned USDT and
// the local timestamp.
func entryLine(e *domain.Entry) string {
	return fmt.Sprintf("%s%s INR = %s USDT  (%s)",
		report.SignOf(e.Primary), report.Grouped(e.Primary.Abs()),
		report.Plain(e.Secondary.Abs()),
		e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
}

func listLimit(args []string, fallback int) int {
	if len(args) == 0 {
		return fallback
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fallback
	}
	if n < 1 {
		n = 1
	}
	if n > 100 {
		n = 100
	}
	return n
}
