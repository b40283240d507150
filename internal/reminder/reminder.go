package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/seido-app/backend/internal/db"
	"github.com/seido-app/backend/internal/models"
	"github.com/seido-app/backend/internal/notify"
)

// Service posts a reminder on the intervention thread (and to the notifier)
// for visits starting inside the configured window. Each intervention is
// reminded at most once.
type Service struct {
	Store    *db.Store
	Notifier notify.Notifier
	Logger   zerolog.Logger
	Window   time.Duration

	cron *cron.Cron
}

// Start schedules the scan with a 5-field cron expression and runs the cron
// loop in the background. An empty expression disables the job.
func (s *Service) Start(expr string) error {
	if expr == "" {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			s.Logger.Error().Err(err).Msg("reminder scan failed")
		}
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	return nil
}

func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run performs one scan.
func (s *Service) Run(ctx context.Context) error {
	window := s.Window
	if window <= 0 {
		window = 24 * time.Hour
	}
	now := time.Now().UTC()
	due, err := s.Store.ListDueReminders(ctx, now, window)
	if err != nil {
		return err
	}

	for _, iv := range due {
		body := ReminderBody(iv)
		err := s.Store.InsertMessage(ctx, models.ConversationMessage{
			ID:             uuid.New(),
			InterventionID: iv.ID,
			Kind:           models.MessageKindReminder,
			Body:           body,
			CreatedAt:      now,
		})
		if err != nil {
			s.Logger.Error().Err(err).Str("intervention_id", iv.ID.String()).Msg("reminder message failed")
			continue
		}
		if err := s.Store.MarkReminded(ctx, iv.ID, now); err != nil {
			s.Logger.Error().Err(err).Str("intervention_id", iv.ID.String()).Msg("mark reminded failed")
			continue
		}
		if s.Notifier != nil {
			if err := s.Notifier.Send(ctx, notify.Notification{
				InterventionID: iv.ID,
				Kind:           notify.KindReminder,
				Title:          "Upcoming intervention visit",
				Body:           body,
			}); err != nil {
				s.Logger.Warn().Err(err).Str("intervention_id", iv.ID.String()).Msg("reminder notification failed")
			}
		}
		s.Logger.Info().Str("intervention_id", iv.ID.String()).Msg("reminder sent")
	}
	return nil
}

// ReminderBody formats the thread message for an upcoming visit.
func ReminderBody(iv models.Intervention) string {
	when := "soon"
	if iv.ScheduledDate != nil {
		when = iv.ScheduledDate.UTC().Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("Reminder: visit for %q is scheduled at %s.", iv.Title, when)
}
