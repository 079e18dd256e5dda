// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"tutorly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAvailabilityRepo) Create(ctx context.Context, w models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to insert availability window: %w", err)
	}
	return &w, nil
}

// UpdateByID rewrites day and bounds of one of the tutor's windows. Windows of
// other tutors never match the filter.
func (r *mongoAvailabilityRepo) UpdateByID(ctx context.Context, tutorID, id string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "tutorId": tutorID}
	update := bson.M{"$set": bson.M{
		"dayOfWeek": p.DayOfWeek,
		"startTime": p.StartTime,
		"endTime":   p.EndTime,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.AvailabilityWindow
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update availability window: %w", err)
	}
	return &updated, nil
}

func (r *mongoAvailabilityRepo) ListByTutor(ctx context.Context, tutorID string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"tutorId": tutorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	defer cursor.Close(ctx)

	windows := []models.AvailabilityWindow{}
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding availability: %w", err)
	}
	return windows, nil
}
