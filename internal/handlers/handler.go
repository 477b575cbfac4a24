package handlers

import (
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meter-bot/internal/directory"
	"meter-bot/internal/meter"
	"meter-bot/internal/models"
	"meter-bot/internal/reminder"
	"meter-bot/internal/storage"
)

type Handler struct {
	Bot   *tgbotapi.BotAPI
	Meter *meter.Service
	Dir   *directory.Directory
	Store *storage.DB
	Log   *slog.Logger
	Loc   *time.Location

	// Reminders is set after construction: the reminder service takes the
	// handler as its Gateway.
	Reminders *reminder.Service
}

func (h *Handler) today() string {
	return time.Now().In(h.Loc).Format(models.DateLayout)
}

func (h *Handler) send(userID int64, text string) {
	if _, err := h.Bot.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		h.Log.Warn("send failed", "user", userID, "err", err)
	}
}

// sendMenu pushes the main reply keyboard: three resources and stats.
func (h *Handler) sendMenu(userID int64) {
	resources := models.Resources()
	row := make([]tgbotapi.KeyboardButton, 0, len(resources))
	for _, r := range resources {
		row = append(row, tgbotapi.NewKeyboardButton(r.Title()))
	}
	kb := tgbotapi.NewReplyKeyboard(
		row,
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnStats)),
	)
	kb.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(userID, textMenu)
	msg.ReplyMarkup = kb
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Warn("menu send failed", "user", userID, "err", err)
	}
}

// ---------- reminder.Gateway -------------------------------------------

func (h *Handler) SendReminder(userID int64) error {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRemindTomorrow, cbRemindTomorrow),
			tgbotapi.NewInlineKeyboardButtonData(btnRemindDone, cbRemindDone),
		),
	)
	msg := tgbotapi.NewMessage(userID, textReminder)
	msg.ReplyMarkup = kb
	_, err := h.Bot.Send(msg)
	return err
}

func (h *Handler) SendFollowUp(userID int64) error {
	_, err := h.Bot.Send(tgbotapi.NewMessage(userID, textFollowUp))
	return err
}
