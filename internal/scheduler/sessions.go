package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/tajhans/camber-scouting/internal/db"
	"github.com/tajhans/camber-scouting/internal/metrics"
)

const (
	// Hourly, on the hour.
	sessionPurgeCron   = "0 * * * *"
	sessionPurgeWindow = 2 * time.Minute
)

// ScheduleSessionPurge registers removal of expired sessions and stale
// verification codes. Rows past their expiry are already rejected at
// read time; the job keeps the tables from growing without bound.
func (s *Service) ScheduleSessionPurge(database *db.DB) error {
	if database == nil {
		return fmt.Errorf("session purge requires database")
	}

	_, err := s.scheduler.NewJob(
		gocron.CronJob(sessionPurgeCron, false),
		gocron.NewTask(func() { purgeExpiredSessions(database) }),
		gocron.WithName("purge_expired_sessions"),
	)
	if err != nil {
		return fmt.Errorf("schedule session purge: %w", err)
	}
	return nil
}

func purgeExpiredSessions(database *db.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), sessionPurgeWindow)
	defer cancel()

	sessions, err := database.Queries.DeleteExpiredSessions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge expired sessions")
		return
	}
	if sessions > 0 {
		metrics.SessionsPurged.Add(float64(sessions))
	}

	verifications, err := database.Queries.DeleteExpiredVerifications(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge expired verification codes")
		return
	}

	if sessions > 0 || verifications > 0 {
		log.Info().
			Int64("sessions", sessions).
			Int64("verifications", verifications).
			Msg("Purged expired auth rows")
	}
}
