package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"drivo-backend/internal/config"
	"drivo-backend/internal/shared"
	"drivo-backend/pkg/logger"
)

// Scheduler registers the recurring maintenance jobs.
type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddr string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerPurgeExpiredOTPsJob(); err != nil {
		return err
	}
	return s.registerClearStaleLocationsJob()
}

// ================================================
// JOB 1: Purge expired email OTPs (hourly)
// ================================================
func (s *Scheduler) registerPurgeExpiredOTPsJob() error {
	payload, err := json.Marshal(shared.PurgeExpiredOTPsPayload{
		OlderThanHours: s.jobConfig.OTPRetentionHours,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgeExpiredOTPs, payload)

	_, err = s.scheduler.Register(
		"0 * * * *", // hourly, on the hour
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register PurgeExpiredOTPs job", err)
		return err
	}

	logger.Info("registered PurgeExpiredOTPs: hourly", map[string]interface{}{
		"retention_hours": s.jobConfig.OTPRetentionHours,
	})
	return nil
}

// ================================================
// JOB 2: Clear stale driver locations (daily at 4 AM)
// ================================================
func (s *Scheduler) registerClearStaleLocationsJob() error {
	payload, err := json.Marshal(shared.ClearStaleLocationsPayload{
		StalenessHours: s.jobConfig.LocationStalenessHours,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeClearStaleLocations, payload)

	_, err = s.scheduler.Register(
		"0 4 * * *", // daily at 4 AM, low traffic window
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register ClearStaleLocations job", err)
		return err
	}

	logger.Info("registered ClearStaleLocations: daily at 4 AM", map[string]interface{}{
		"staleness_hours": s.jobConfig.LocationStalenessHours,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
