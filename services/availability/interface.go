package availability

import (
	"context"
	"fmt"

	availabilityRepo "tutorly/database/repository/availability"
	"tutorly/models"
)

// AvailabilityService is the persistence side of availability editing. Every
// call is scoped to one tutor; windows of other tutors are never touched.
type AvailabilityService interface {
	CreateAvailability(ctx context.Context, tutorID string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error)
	UpdateAvailability(ctx context.Context, tutorID, id string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error)
	ListAvailability(ctx context.Context, tutorID string) ([]models.AvailabilityWindow, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo availabilityRepo.AvailabilityRepository
}

func NewDefaultAvailabilityService(repo availabilityRepo.AvailabilityRepository) (*DefaultAvailabilityService, error) {
	if repo == nil {
		return nil, fmt.Errorf("availability service initialization error: repository is nil")
	}
	return &DefaultAvailabilityService{Repo: repo}, nil
}
