package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meter-bot/internal/models"
)

var deleteDateRx = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// parseDeleteCommand parses "delete DD.MM.YYYY <resource-alias>". The
// returned date is the storage form YYYY-MM-DD.
func parseDeleteCommand(text string) (models.Resource, string, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 || strings.ToLower(fields[0]) != "delete" {
		return "", "", fmt.Errorf("bad delete command")
	}
	if !deleteDateRx.MatchString(fields[1]) {
		return "", "", fmt.Errorf("bad date %q", fields[1])
	}
	t, err := time.Parse("02.01.2006", fields[1])
	if err != nil {
		return "", "", fmt.Errorf("bad date %q: %w", fields[1], err)
	}
	if t.Year() < 2000 || t.Year() > 2100 {
		return "", "", fmt.Errorf("year %d out of range", t.Year())
	}
	res, err := models.ParseResource(fields[2])
	if err != nil {
		return "", "", err
	}
	return res, t.Format(models.DateLayout), nil
}

// handleDeleteCommand looks the reading up and asks for confirmation. The
// confirm callback carries resource, date and the exact value seen now, so
// a row replaced in between is never deleted by a stale tap.
func (h *Handler) handleDeleteCommand(userID int64, text string) {
	res, date, err := parseDeleteCommand(text)
	if err != nil {
		h.send(userID, textDeleteUsage)
		return
	}
	r, err := h.Meter.ReadingOn(userID, res, date)
	if err != nil {
		h.Log.Error("delete lookup", "user", userID, "err", err)
		h.send(userID, textStorageError)
		return
	}
	if r == nil {
		h.send(userID, textNothingToDelete)
		return
	}

	data := strings.Join([]string{cbConfirmDelete, string(res), date, formatValue(r.Value)}, ":")
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnConfirmDelete, data),
			tgbotapi.NewInlineKeyboardButtonData(btnCancelDelete, cbCancelDelete),
		),
	)
	msg := tgbotapi.NewMessage(userID, fmt.Sprintf(
		"Удалить показание?\n%s за %s: %s %s",
		res.Title(), displayDate(date), formatValue(r.Value), res.Unit()))
	msg.ReplyMarkup = kb
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Warn("confirm prompt send failed", "user", userID, "err", err)
	}
}

// parseConfirmDelete splits "confirm_delete:<resource>:<date>:<value>".
func parseConfirmDelete(data string) (models.Resource, string, float64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 4 || parts[0] != cbConfirmDelete {
		return "", "", 0, fmt.Errorf("bad confirm payload %q", data)
	}
	res := models.Resource(parts[1])
	if !res.Valid() {
		return "", "", 0, models.ErrUnknownResource
	}
	value, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return "", "", 0, err
	}
	return res, parts[2], value, nil
}
