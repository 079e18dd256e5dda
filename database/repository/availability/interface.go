// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"errors"

	"tutorly/database"
	"tutorly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a window does not exist for the tutor.
var ErrNotFound = errors.New("availability window not found")

type AvailabilityRepository interface {
	Create(ctx context.Context, w models.AvailabilityWindow) (*models.AvailabilityWindow, error)
	UpdateByID(ctx context.Context, tutorID, id string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error)
	ListByTutor(ctx context.Context, tutorID string) ([]models.AvailabilityWindow, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: database.Database().Collection("availability"),
	}
}
