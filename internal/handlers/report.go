package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meter-bot/internal/models"
	"meter-bot/internal/stats"
)

// handleStats sends one table per resource, rendered in a code block the
// way a terminal would print it.
func (h *Handler) handleStats(userID int64) {
	for _, res := range models.Resources() {
		rows, err := h.Meter.Report(userID, res)
		if err != nil {
			h.Log.Error("report", "user", userID, "resource", res, "err", err)
			h.send(userID, textStorageError)
			return
		}
		if len(rows) == 0 {
			h.send(userID, "📋 "+res.Title()+": нет данных.")
			continue
		}
		h.sendMonospace(userID, renderDaily(res, rows))
	}
	h.sendMenu(userID)
}

func renderDaily(res models.Resource, rows []stats.Row) string {
	var b strings.Builder
	b.WriteString("📋 " + res.Title() + "\n\n")
	b.WriteString(fmt.Sprintf("%-12s %-10s %-8s %-8s %-5s\n", "Дата", "Показания", "Объем", "Средн.", "Ед."))
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-12s %-10d %-8s %-8s %-5s\n",
			r.Date, r.Reading, orDash(r.Consumption), orDash(r.Average), res.Unit()))
	}
	return b.String()
}

func orDash(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

// handleMonthly sends the per-month aggregation for every resource.
func (h *Handler) handleMonthly(userID int64) {
	for _, res := range models.Resources() {
		rows, err := h.Meter.MonthlyReport(userID, res)
		if err != nil {
			h.Log.Error("monthly report", "user", userID, "resource", res, "err", err)
			h.send(userID, textStorageError)
			return
		}
		if len(rows) == 0 {
			h.send(userID, "📋 "+res.Title()+": нет данных.")
			continue
		}
		var b strings.Builder
		b.WriteString("📋 " + res.Title() + " по месяцам\n\n")
		for _, m := range rows {
			if m.Consumption == nil {
				// a single reading in the month: not the same as zero usage
				b.WriteString(m.Month + ": мало данных (одно показание)\n")
				continue
			}
			b.WriteString(fmt.Sprintf("%s: %d %s\n", m.Month, *m.Consumption, res.Unit()))
		}
		h.sendMonospace(userID, b.String())
	}
	h.sendMenu(userID)
}

// sendMonospace tries MarkdownV2 first and falls back to plain text when
// telegram rejects the escaping.
func (h *Handler) sendMonospace(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, "```\n"+text+"```")
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := h.Bot.Send(msg); err != nil {
		h.send(userID, text)
	}
}
