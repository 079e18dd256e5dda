// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"

	"tutorly/database"
	"tutorly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepository interface {
	ListByTutor(ctx context.Context, tutorID string, q models.SessionQuery) ([]models.SessionRecord, int64, error)
	ListByDate(ctx context.Context, date string) ([]models.SessionRecord, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new MongoDB SessionRepository.
func NewMongoSessionRepo() SessionRepository {
	return &mongoSessionRepo{
		coll: database.Database().Collection("sessions"),
	}
}
