package sessions

import (
	"context"
	"fmt"
	"time"

	sessionRepo "tutorly/database/repository/session"
	"tutorly/models"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// SessionService lists a tutor's sessions and builds the classified board.
type SessionService interface {
	ListSessions(ctx context.Context, tutorID string, q models.SessionQuery) (*models.SessionPage, error)
	Board(ctx context.Context, tutorID, date string, now time.Time) (*models.SessionBoard, error)
}

// PageCache stores raw session pages. Classifications are never cached.
type PageCache interface {
	Get(ctx context.Context, key string) (*models.SessionPage, bool)
	Set(ctx context.Context, key string, page *models.SessionPage) error
}

// DefaultSessionService is the production implementation. Cache is optional.
type DefaultSessionService struct {
	Repo  sessionRepo.SessionRepository
	Cache PageCache
}

func NewDefaultSessionService(repo sessionRepo.SessionRepository, cache PageCache) (*DefaultSessionService, error) {
	if repo == nil {
		return nil, fmt.Errorf("session service initialization error: repository is nil")
	}
	return &DefaultSessionService{Repo: repo, Cache: cache}, nil
}
