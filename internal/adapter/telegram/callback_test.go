package telegram

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
)

func TestResetCallbackDataRoundTrip(t *testing.T) {
	t.Parallel()

	data := resetCallbackData(resetActionConfirm, "01HTOKEN")
	if data != "reset:confirm:01HTOKEN" {
		t.Fatalf("unexpected callback data: %q", data)
	}

	action, token, ok := parseResetCallback(data)
	if !ok || action != resetActionConfirm || token != "01HTOKEN" {
		t.Fatalf("round trip failed: action=%q token=%q ok=%v", action, token, ok)
	}
}

func TestParseResetCallback_Rejects(t *testing.T) {
	t.Parallel()

	for _, data := range []string{"", "reset", "reset:confirm", "other:confirm:tok"} {
		if _, _, ok := parseResetCallback(data); ok {
			t.Fatalf("expected %q to be rejected", data)
		}
	}
}

func TestDisplayNameFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user tgbotapi.User
		want string
	}{
		{"username wins", tgbotapi.User{UserName: "alice", FirstName: "Alice", LastName: "A"}, "alice"},
		{"full name", tgbotapi.User{FirstName: "Alice", LastName: "Smith"}, "Alice Smith"},
		{"first only", tgbotapi.User{FirstName: "Alice"}, "Alice"},
		{"last only", tgbotapi.User{LastName: "Smith"}, "Smith"},
		{"nothing", tgbotapi.User{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayNameFor(&tt.user); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEntryLine(t *testing.T) {
	t.Parallel()

	e := &domain.Entry{
		ID:          3,
		DisplayName: "Bob",
		Primary:     decimal.RequireFromString("-2000"),
		Secondary:   decimal.RequireFromString("-21.39"),
		CreatedAt:   time.Date(2024, 3, 1, 13, 0, 0, 0, time.Local),
	}

	want := "-2,000 INR = 21.39 USDT  (2024-03-01 13:00:00)"
	if got := entryLine(e); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestListLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want int
	}{
		{nil, 10},
		{[]string{"5"}, 5},
		{[]string{"0"}, 1},
		{[]string{"500"}, 100},
		{[]string{"abc"}, 10},
	}

	for _, tt := range tests {
		if got := listLimit(tt.args, 10); got != tt.want {
			t.Fatalf("listLimit(%v) = %d, want %d", tt.args, got, tt.want)
		}
	}
}
