package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tutorly/models"
	"tutorly/services/scheduling"
	"tutorly/utils"

	"go.uber.org/zap"
)

// ErrMissingTutor is returned when no tutor identity accompanies a call.
var ErrMissingTutor = errors.New("tutor identity is required")

// CreateAvailability validates and stores a new window with status "active".
func (s *DefaultAvailabilityService) CreateAvailability(ctx context.Context, tutorID string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error) {
	if tutorID == "" {
		return nil, ErrMissingTutor
	}
	clean, err := scheduling.ValidateWindow(p)
	if err != nil {
		return nil, err
	}

	created, err := s.Repo.Create(ctx, models.AvailabilityWindow{
		TutorID:   tutorID,
		DayOfWeek: clean.DayOfWeek,
		StartTime: clean.StartTime,
		EndTime:   clean.EndTime,
		Status:    models.AvailabilityStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create availability: %w", err)
	}

	utils.GetLogger().Info("Availability window created",
		zap.String("tutorID", tutorID),
		zap.String("windowID", created.ID),
		zap.String("day", string(created.DayOfWeek)))
	return created, nil
}

// UpdateAvailability rewrites day and bounds of an existing window owned by tutorID.
func (s *DefaultAvailabilityService) UpdateAvailability(ctx context.Context, tutorID, id string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error) {
	if tutorID == "" {
		return nil, ErrMissingTutor
	}
	if id == "" {
		return nil, fmt.Errorf("availability id is required")
	}
	clean, err := scheduling.ValidateWindow(p)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateByID(ctx, tutorID, id, clean)
	if err != nil {
		return nil, fmt.Errorf("failed to update availability %s: %w", id, err)
	}
	return updated, nil
}

// ListAvailability returns the tutor's windows ordered Monday..Sunday, then by start time.
func (s *DefaultAvailabilityService) ListAvailability(ctx context.Context, tutorID string) ([]models.AvailabilityWindow, error) {
	if tutorID == "" {
		return nil, ErrMissingTutor
	}
	windows, err := s.Repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}

	order := make(map[models.DayOfWeek]int, len(models.Weekdays))
	for i, d := range models.Weekdays {
		order[d] = i
	}
	sort.SliceStable(windows, func(i, j int) bool {
		if order[windows[i].DayOfWeek] != order[windows[j].DayOfWeek] {
			return order[windows[i].DayOfWeek] < order[windows[j].DayOfWeek]
		}
		return windows[i].StartTime < windows[j].StartTime
	})
	return windows, nil
}
