package scheduling

import (
	"context"

	"tutorly/models"
)

// AvailabilityBackend is the persistence collaborator the reconciler writes through.
type AvailabilityBackend interface {
	CreateAvailability(ctx context.Context, p models.AvailabilityPayload) (*models.AvailabilityWindow, error)
	UpdateAvailability(ctx context.Context, id string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error)
	ListAvailability(ctx context.Context) ([]models.AvailabilityWindow, error)
}

// SessionFetcher lists the signed-in tutor's sessions.
type SessionFetcher interface {
	ListSessions(ctx context.Context, q models.SessionQuery) (*models.SessionPage, error)
}

// AlertKind tells the UI how to present a failure.
type AlertKind string

const (
	// AlertTransient is shown briefly and dismissed automatically.
	AlertTransient AlertKind = "transient"
	// AlertBlocking stays until the user acknowledges it.
	AlertBlocking AlertKind = "blocking"
)

// Notifier surfaces alerts to whatever UI drives the reconciler.
type Notifier interface {
	Notify(kind AlertKind, message string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(kind AlertKind, message string)

func (f NotifierFunc) Notify(kind AlertKind, message string) { f(kind, message) }
