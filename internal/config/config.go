package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	AdminKey       string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`

	// Notifier selection: slack when both Slack values are set, webhook when
	// NotifyWebhookURL is set, otherwise an in-memory noop.
	SlackBotToken    string `mapstructure:"SLACK_BOT_TOKEN"`
	SlackChannelID   string `mapstructure:"SLACK_CHANNEL_ID"`
	NotifyWebhookURL string `mapstructure:"NOTIFY_WEBHOOK_URL"`

	GeocodeBaseURL string `mapstructure:"GEOCODE_BASE_URL"`
	CountryDefault string `mapstructure:"COUNTRY_DEFAULT"`

	// ReminderCron is a 5-field cron expression; empty disables the job.
	ReminderCron   string        `mapstructure:"REMINDER_CRON"`
	ReminderWindow time.Duration `mapstructure:"REMINDER_WINDOW"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("COUNTRY_DEFAULT", "France")
	v.SetDefault("REMINDER_CRON", "0 * * * *")
	v.SetDefault("REMINDER_WINDOW", "24h")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
