package cron

import (
	"context"
	"time"

	"tutorly/config"
	"tutorly/models"
	"tutorly/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderDeliverer sends a due reminder to the tutor. Push delivery lives
// outside this service; LogDeliverer is used when none is configured.
type ReminderDeliverer interface {
	Deliver(ctx context.Context, p models.ReminderPayload) error
}

// LogDeliverer records reminders in the application log.
type LogDeliverer struct {
	Logger *zap.Logger
}

func (d LogDeliverer) Deliver(_ context.Context, p models.ReminderPayload) error {
	d.Logger.Info("Session reminder due",
		zap.String("tutorID", p.TutorID),
		zap.String("sessionID", p.SessionID),
		zap.String("counterpart", p.CounterpartName),
		zap.String("date", p.SessionDate),
		zap.String("start", p.StartTime))
	return nil
}

// RedisOpt returns the asynq connection for the reminder queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(deliverer ReminderDeliverer, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, HandleReminderTask(deliverer, logger))

	go func() {
		logger.Info("ReminderWorker: starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("ReminderWorker: failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("ReminderWorker: max retry attempts reached; reminders disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleReminderTask decodes and delivers a reminder.
func HandleReminderTask(deliverer ReminderDeliverer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderTask(task)
		if err != nil {
			logger.Error("ReminderHandler: invalid payload", zap.Error(err))
			return err
		}
		if err := deliverer.Deliver(ctx, p); err != nil {
			logger.Error("ReminderHandler: failed to deliver reminder", zap.String("sessionID", p.SessionID), zap.Error(err))
			return err
		}
		return nil
	}
}
