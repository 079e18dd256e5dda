package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tutorly/models"
	"tutorly/services/scheduling"
	"tutorly/utils"

	"go.uber.org/zap"
)

// QueryError reports invalid list parameters.
type QueryError struct {
	Field   string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var ErrMissingTutor = errors.New("tutor identity is required")

func normalizeQuery(q models.SessionQuery) (models.SessionQuery, error) {
	if q.Offset < 0 {
		return q, &QueryError{Field: "offset", Message: "must not be negative"}
	}
	switch {
	case q.Limit < 0:
		return q, &QueryError{Field: "limit", Message: "must not be negative"}
	case q.Limit == 0:
		q.Limit = DefaultPageLimit
	case q.Limit > MaxPageLimit:
		q.Limit = MaxPageLimit
	}
	if q.Date != "" {
		if _, err := time.Parse("2006-01-02", q.Date); err != nil {
			return q, &QueryError{Field: "date", Message: "expected YYYY-MM-DD"}
		}
	}
	return q, nil
}

func cacheKey(tutorID string, q models.SessionQuery) string {
	return fmt.Sprintf("%s%s:%d:%d:%s", utils.SessionCachePrefix, tutorID, q.Limit, q.Offset, q.Date)
}

// ListSessions returns one page of the tutor's sessions.
func (s *DefaultSessionService) ListSessions(ctx context.Context, tutorID string, q models.SessionQuery) (*models.SessionPage, error) {
	logger := utils.GetLogger()
	if tutorID == "" {
		return nil, ErrMissingTutor
	}
	q, err := normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	key := cacheKey(tutorID, q)
	if s.Cache != nil {
		if page, ok := s.Cache.Get(ctx, key); ok {
			return page, nil
		}
	}

	records, total, err := s.Repo.ListByTutor(ctx, tutorID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if records == nil {
		records = []models.SessionRecord{}
	}
	page := &models.SessionPage{Result: records, Total: total}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, page); err != nil {
			logger.Warn("Failed to cache session page", zap.String("key", key), zap.Error(err))
		}
	}
	return page, nil
}

// Board classifies all of the tutor's sessions (optionally for one date)
// against now, reading them MaxPageLimit at a time. The classification is
// computed on every call.
func (s *DefaultSessionService) Board(ctx context.Context, tutorID, date string, now time.Time) (*models.SessionBoard, error) {
	records, total, err := s.listAll(ctx, tutorID, date)
	if err != nil {
		return nil, err
	}
	board := scheduling.GroupByBucket(now, records)
	board.Total = total
	if len(board.Invalid) > 0 {
		utils.GetLogger().Warn("Sessions with unreadable date or time",
			zap.String("tutorID", tutorID), zap.Int("count", len(board.Invalid)))
	}
	return &board, nil
}

func (s *DefaultSessionService) listAll(ctx context.Context, tutorID, date string) ([]models.SessionRecord, int64, error) {
	q := models.SessionQuery{Limit: MaxPageLimit, Date: date}
	var all []models.SessionRecord
	for {
		page, err := s.ListSessions(ctx, tutorID, q)
		if err != nil {
			return nil, 0, err
		}
		all = append(all, page.Result...)
		if len(page.Result) == 0 || int64(len(all)) >= page.Total {
			return all, page.Total, nil
		}
		q.Offset += int64(len(page.Result))
	}
}
