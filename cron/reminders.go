package cron

import (
	"context"
	"errors"
	"time"

	sessionRepo "tutorly/database/repository/session"
	"tutorly/models"
	"tutorly/services/scheduling"
	"tutorly/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of *asynq.Client the scanner needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// retentionMargin keeps a delivered reminder's ID in Redis past the lead time
// so later scans of the same session hit ErrTaskIDConflict.
const retentionMargin = time.Hour

// ReminderScanner periodically looks at today's sessions and schedules a
// reminder for every session that is still Next and starts within LeadTime.
type ReminderScanner struct {
	Sessions sessionRepo.SessionRepository
	Queue    Enqueuer
	LeadTime time.Duration
	Now      func() time.Time
	Logger   *zap.Logger
}

// Scan runs one pass and returns the number of newly enqueued reminders.
func (s *ReminderScanner) Scan(ctx context.Context) (int, error) {
	now := s.Now()
	records, err := s.Sessions.ListByDate(ctx, now.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, rec := range records {
		c, err := scheduling.Classify(now, rec)
		if err != nil {
			s.Logger.Warn("ReminderScanner: skipping unreadable session", zap.String("sessionID", rec.ID), zap.Error(err))
			continue
		}
		if c.BookingBucket != models.BucketToday || c.LiveStatus != models.LiveNext {
			continue
		}
		start, err := scheduling.SessionStart(rec, now.Location())
		if err != nil || start.Sub(now) > s.LeadTime {
			continue
		}

		task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
			SessionID:       rec.ID,
			TutorID:         rec.TutorID,
			CounterpartName: rec.CounterpartName,
			SessionDate:     rec.SessionDate,
			StartTime:       rec.StartTime,
			FireDate:        now.Format(time.RFC3339),
		}, now, s.retention())
		if err != nil {
			s.Logger.Error("ReminderScanner: failed to build task", zap.String("sessionID", rec.ID), zap.Error(err))
			continue
		}
		if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) {
				continue
			}
			s.Logger.Error("ReminderScanner: failed to enqueue", zap.String("sessionID", rec.ID), zap.Error(err))
			continue
		}
		enqueued++
	}
	return enqueued, nil
}

// retention is how long a finished reminder task stays in the queue. A session
// is a candidate from LeadTime before its start until it starts.
func (s *ReminderScanner) retention() time.Duration {
	if s.LeadTime <= 0 {
		return retentionMargin
	}
	return s.LeadTime + retentionMargin
}

// Start runs Scan every interval until ctx is cancelled. A non-positive
// interval leaves reminders disabled.
func (s *ReminderScanner) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.Logger.Error("ReminderScanner: invalid scan interval; reminders disabled", zap.Duration("interval", interval))
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.Scan(ctx)
				if err != nil {
					s.Logger.Error("ReminderScanner: scan failed", zap.Error(err))
					continue
				}
				if n > 0 {
					s.Logger.Info("ReminderScanner: reminders scheduled", zap.Int("count", n))
				}
			}
		}
	}()
}
