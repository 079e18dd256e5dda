// File: database/repository/session/queries.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"tutorly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListByTutor returns one page of the tutor's sessions, newest date first, and
// the total matching count.
func (repo *mongoSessionRepo) ListByTutor(ctx context.Context, tutorID string, q models.SessionQuery) ([]models.SessionRecord, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"tutorId": tutorID}
	if q.Date != "" {
		filter["sessionDate"] = q.Date
	}

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sessionDate", Value: -1}, {Key: "startTime", Value: 1}}).
		SetSkip(q.Offset)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []models.SessionRecord{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, total, nil
}

// ListByDate returns every session on date across tutors.
func (repo *mongoSessionRepo) ListByDate(ctx context.Context, date string) ([]models.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"sessionDate": date})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.SessionRecord
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}
