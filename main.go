package main

import (
	"log/slog"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"meter-bot/internal/config"
	"meter-bot/internal/directory"
	"meter-bot/internal/handlers"
	"meter-bot/internal/meter"
	"meter-bot/internal/reminder"
	"meter-bot/internal/scheduler"
	"meter-bot/internal/storage"
)

func main() {
	_ = godotenv.Load() // METERBOT_TELEGRAM_TOKEN etc.

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	loc, err := cfg.Location()
	if err != nil {
		log.Error("timezone", "tz", cfg.Timezone, "err", err)
		os.Exit(1)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Error("telegram", "err", err)
		os.Exit(1)
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Error("storage", "err", err)
		os.Exit(1)
	}

	dir, err := directory.New(db)
	if err != nil {
		log.Error("directory", "err", err)
		os.Exit(1)
	}

	h := &handlers.Handler{
		Bot:   bot,
		Meter: meter.New(db, log),
		Dir:   dir,
		Store: db,
		Log:   log,
		Loc:   loc,
	}
	h.Reminders = reminder.New(db, dir, h, log, loc, cfg.RemindHour)

	sched, err := scheduler.Start(h.Reminders, loc, cfg.RemindDay, cfg.RemindHour)
	if err != nil {
		log.Error("scheduler", "err", err)
		os.Exit(1)
	}
	defer func() { _ = sched.Shutdown() }()

	log.Info("bot started", "account", bot.Self.UserName, "tz", cfg.Timezone)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := bot.GetUpdatesChan(updateConfig)

	for upd := range updates {
		if upd.Message != nil {
			h.HandleMessage(upd.Message)
		}
		if upd.CallbackQuery != nil {
			h.HandleCallback(upd.CallbackQuery)
		}
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
