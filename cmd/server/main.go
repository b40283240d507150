package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seido-app/backend/internal/config"
	"github.com/seido-app/backend/internal/db"
	"github.com/seido-app/backend/internal/geocode"
	httpapi "github.com/seido-app/backend/internal/http"
	"github.com/seido-app/backend/internal/notify"
	"github.com/seido-app/backend/internal/reminder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "seido-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate db")
	}

	var notifier notify.Notifier
	switch {
	case cfg.SlackBotToken != "" && cfg.SlackChannelID != "":
		notifier, err = notify.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannelID)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build slack notifier")
		}
		logger.Info().Msg("using slack notifier")
	case cfg.NotifyWebhookURL != "":
		notifier = notify.WebhookNotifier{URL: cfg.NotifyWebhookURL}
		logger.Info().Msg("using webhook notifier")
	default:
		notifier = &notify.NoopNotifier{}
		logger.Info().Msg("using noop notifier")
	}

	geocoder := &geocode.NominatimGeocoder{BaseURL: cfg.GeocodeBaseURL}

	reminders := &reminder.Service{
		Store:    store,
		Notifier: notifier,
		Logger:   logger,
		Window:   cfg.ReminderWindow,
	}
	if err := reminders.Start(cfg.ReminderCron); err != nil {
		logger.Fatal().Err(err).Msg("failed to start reminder job")
	}
	defer reminders.Stop()

	router := httpapi.Router(cfg, store, notifier, geocoder, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
