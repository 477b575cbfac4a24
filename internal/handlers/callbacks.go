package handlers

import (
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meter-bot/internal/models"
)

func (h *Handler) HandleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	userID := cq.Message.Chat.ID
	data := cq.Data

	// always answer, removes the client-side spinner
	_, _ = h.Bot.Request(tgbotapi.NewCallback(cq.ID, ""))

	switch {
	case data == cbRemindTomorrow:
		h.handleRemindTomorrow(userID, cq.Message.MessageID)
	case data == cbRemindDone:
		h.handleRemindDone(userID, cq.Message.MessageID)
	case data == cbCancelDelete:
		h.edit(userID, cq.Message.MessageID, textDeleteCancelled)
	case strings.HasPrefix(data, cbConfirmDelete+":"):
		h.handleConfirmDelete(userID, cq.Message.MessageID, data)
	case data == cbUndoDelete:
		h.handleUndo(userID)
	}
}

func (h *Handler) edit(userID int64, messageID int, text string) {
	if _, err := h.Bot.Send(tgbotapi.NewEditMessageText(userID, messageID, text)); err != nil {
		h.Log.Warn("edit failed", "user", userID, "err", err)
	}
}

func (h *Handler) handleRemindTomorrow(userID int64, messageID int) {
	if err := h.Reminders.Defer(userID, time.Now()); err != nil {
		h.Log.Error("deferring reminder", "user", userID, "err", err)
		h.send(userID, textStorageError)
		return
	}
	h.edit(userID, messageID, textRemindTomorrow)
}

func (h *Handler) handleRemindDone(userID int64, messageID int) {
	if err := h.Reminders.Snooze(userID); err != nil {
		h.Log.Error("snoozing", "user", userID, "err", err)
		h.send(userID, textStorageError)
		return
	}
	h.edit(userID, messageID, textRemindDone)
}

func (h *Handler) handleConfirmDelete(userID int64, messageID int, data string) {
	res, date, value, err := parseConfirmDelete(data)
	if err != nil {
		h.Log.Warn("bad confirm payload", "user", userID, "err", err)
		h.edit(userID, messageID, textNothingToDelete)
		return
	}
	err = h.Meter.Delete(userID, res, date, value)
	if errors.Is(err, models.ErrNothingToDelete) {
		h.edit(userID, messageID, textNothingToDelete)
		return
	}
	if err != nil {
		h.Log.Error("delete", "user", userID, "err", err)
		h.edit(userID, messageID, textStorageError)
		return
	}
	h.edit(userID, messageID, "🗑 Удалено: "+res.Title()+" за "+displayDate(date)+".")

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnUndoDelete, cbUndoDelete),
		),
	)
	msg := tgbotapi.NewMessage(userID, "Передумали? В течение 5 минут удаление можно отменить.")
	msg.ReplyMarkup = kb
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Warn("undo hint send failed", "user", userID, "err", err)
	}
}
