package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meter-bot/internal/models"
)

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	if msg.IsCommand() {
		h.HandleCommand(msg)
		return
	}
	h.HandleText(msg)
}

func (h *Handler) HandleText(msg *tgbotapi.Message) {
	userID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	// menu buttons
	for _, r := range models.Resources() {
		if text == r.Title() {
			h.promptValue(userID, r)
			return
		}
	}
	if text == btnStats {
		h.handleStats(userID)
		return
	}
	if strings.HasPrefix(strings.ToLower(text), "delete") {
		h.handleDeleteCommand(userID, text)
		return
	}

	// pending value input
	state, err := h.Store.GetUserState(userID)
	if err != nil {
		h.Log.Error("reading user state", "user", userID, "err", err)
		h.send(userID, textStorageError)
		return
	}
	if res, ok := models.ParseAwaitValue(state); ok {
		h.handleValueInput(userID, res, text)
		return
	}

	h.sendMenu(userID)
}

// promptValue remembers which resource the next number belongs to.
func (h *Handler) promptValue(userID int64, res models.Resource) {
	if err := h.Store.SetUserState(userID, models.AwaitValueState(res)); err != nil {
		h.Log.Error("setting user state", "user", userID, "err", err)
		h.send(userID, textStorageError)
		return
	}
	h.send(userID, "Введите показания счётчика ("+res.Title()+", "+res.Unit()+"):")
}

func (h *Handler) handleValueInput(userID int64, res models.Resource, text string) {
	value, err := h.Meter.Submit(userID, res, text, h.today())
	var below *models.BelowPreviousError
	switch {
	case err == nil:
		h.clearState(userID)
		h.send(userID, "✅ Сохранено: "+formatValue(value)+" "+res.Unit())
		h.sendMenu(userID)
	case errors.Is(err, models.ErrNotANumber):
		// keep the input mode, re-prompt the same field
		h.send(userID, textNotANumber)
	case errors.As(err, &below):
		h.send(userID, fmt.Sprintf(
			"❌ Показание %s меньше предыдущего (%s). Счётчик не может идти назад, введите значение ещё раз.",
			formatValue(below.Given), formatValue(below.Prev)))
	case errors.Is(err, models.ErrAlreadySubmitted):
		h.clearState(userID)
		h.send(userID, "❌ За сегодня показание по этому счётчику уже есть. Удалить его можно командой delete.")
		h.sendMenu(userID)
	default:
		h.Log.Error("submit", "user", userID, "resource", res, "err", err)
		h.send(userID, textStorageError)
	}
}

// clearState drops the input mode. The submission itself already went
// through, so a failure here only risks an extra prompt; still logged.
func (h *Handler) clearState(userID int64) {
	if err := h.Store.SetUserState(userID, ""); err != nil {
		h.Log.Error("clearing user state", "user", userID, "err", err)
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// displayDate renders a stored YYYY-MM-DD day as DD.MM.YYYY.
func displayDate(iso string) string {
	if len(iso) != 10 {
		return iso
	}
	return iso[8:10] + "." + iso[5:7] + "." + iso[0:4]
}
