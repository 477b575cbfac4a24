package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "METERBOT"

type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
	DBPath        string `envconfig:"DB_PATH" default:"meter.db"`
	Timezone      string `envconfig:"TZ" default:"Europe/Moscow"`
	RemindDay     int    `envconfig:"REMIND_DAY" default:"1"`  // day of month the cycle fires
	RemindHour    int    `envconfig:"REMIND_HOUR" default:"9"` // local hour for prompts and follow-ups
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON       bool   `envconfig:"LOG_JSON" default:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if tok := tokenFromSecret(); tok != "" {
		cfg.TelegramToken = tok
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("config: telegram token missing (METERBOT_TELEGRAM_TOKEN or docker secret)")
	}
	if cfg.RemindDay < 1 || cfg.RemindDay > 28 {
		return nil, fmt.Errorf("config: remind day %d out of range [1,28]", cfg.RemindDay)
	}
	if cfg.RemindHour < 0 || cfg.RemindHour > 23 {
		return nil, fmt.Errorf("config: remind hour %d out of range [0,23]", cfg.RemindHour)
	}
	return cfg, nil
}

// Location resolves the configured IANA timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// tokenFromSecret reads the docker secret, which wins over the env token.
func tokenFromSecret() string {
	data, err := os.ReadFile("/run/secrets/telegram_bot_token")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
