package handlers

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meter-bot/internal/models"
)

func (h *Handler) HandleCommand(msg *tgbotapi.Message) {
	userID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		h.handleStart(userID)
	case "undo":
		h.handleUndo(userID)
	case "months":
		h.handleMonthly(userID)
	default:
		h.sendMenu(userID)
	}
}

// handleStart registers (or re-activates) the user and shows the menu.
func (h *Handler) handleStart(userID int64) {
	if err := h.Dir.EnsureActive(userID); err != nil {
		h.Log.Error("activating user", "user", userID, "err", err)
		h.send(userID, textStorageError)
		return
	}
	h.Log.Info("user active", "user", userID)
	h.sendMenu(userID)
}

func (h *Handler) handleUndo(userID int64) {
	slot, err := h.Meter.Undo(userID)
	switch {
	case err == nil:
		h.send(userID, "↩ Восстановлено: "+slot.Resource.Title()+" за "+
			displayDate(slot.Date)+" — "+formatValue(slot.Value)+" "+slot.Resource.Unit())
	case errors.Is(err, models.ErrUndoEmpty):
		h.send(userID, textUndoEmpty)
	case errors.Is(err, models.ErrUndoExpired):
		h.send(userID, textUndoExpired)
	case errors.Is(err, models.ErrUndoConflict):
		h.send(userID, textUndoConflict)
	default:
		h.Log.Error("undo", "user", userID, "err", err)
		h.send(userID, textStorageError)
	}
}
