package availability

import (
	"context"
	"fmt"
	"testing"

	availabilityRepo "tutorly/database/repository/availability"
	"tutorly/models"
	"tutorly/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	windows []models.AvailabilityWindow
	seq     int
}

func (m *memoryRepo) Create(_ context.Context, w models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	m.seq++
	w.ID = fmt.Sprintf("id-%d", m.seq)
	m.windows = append(m.windows, w)
	return &w, nil
}

func (m *memoryRepo) UpdateByID(_ context.Context, tutorID, id string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error) {
	for i := range m.windows {
		if m.windows[i].ID == id && m.windows[i].TutorID == tutorID {
			m.windows[i].DayOfWeek = p.DayOfWeek
			m.windows[i].StartTime = p.StartTime
			m.windows[i].EndTime = p.EndTime
			w := m.windows[i]
			return &w, nil
		}
	}
	return nil, availabilityRepo.ErrNotFound
}

func (m *memoryRepo) ListByTutor(_ context.Context, tutorID string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range m.windows {
		if w.TutorID == tutorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memoryRepo) EnsureIndexes(context.Context) error { return nil }

func TestNewDefaultAvailabilityService(t *testing.T) {
	_, err := NewDefaultAvailabilityService(nil)
	assert.Error(t, err)
}

func TestCreateAvailability(t *testing.T) {
	repo := &memoryRepo{}
	svc, err := NewDefaultAvailabilityService(repo)
	require.NoError(t, err)

	w, err := svc.CreateAvailability(context.Background(), "tutor-1", models.AvailabilityPayload{
		DayOfWeek: "MON", StartTime: "9:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, models.Monday, w.DayOfWeek)
	assert.Equal(t, "09:00", w.StartTime)
	assert.Equal(t, models.AvailabilityStatusActive, w.Status)
	assert.Equal(t, "tutor-1", w.TutorID)
}

func TestCreateAvailability_Rejects(t *testing.T) {
	repo := &memoryRepo{}
	svc := &DefaultAvailabilityService{Repo: repo}

	_, err := svc.CreateAvailability(context.Background(), "tutor-1", models.AvailabilityPayload{
		DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "18:00",
	})
	assert.True(t, scheduling.IsValidationError(err, scheduling.CodeSameStartEnd))

	_, err = svc.CreateAvailability(context.Background(), "", models.AvailabilityPayload{
		DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrMissingTutor)
	assert.Empty(t, repo.windows)
}

func TestUpdateAvailability_OwnershipScoped(t *testing.T) {
	repo := &memoryRepo{}
	svc := &DefaultAvailabilityService{Repo: repo}
	ctx := context.Background()

	w, err := svc.CreateAvailability(ctx, "owner", models.AvailabilityPayload{DayOfWeek: models.Friday, StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	_, err = svc.UpdateAvailability(ctx, "intruder", w.ID, models.AvailabilityPayload{DayOfWeek: models.Friday, StartTime: "11:00", EndTime: "12:00"})
	assert.ErrorIs(t, err, availabilityRepo.ErrNotFound)

	updated, err := svc.UpdateAvailability(ctx, "owner", w.ID, models.AvailabilityPayload{DayOfWeek: models.Saturday, StartTime: "11:00", EndTime: "12:00"})
	require.NoError(t, err)
	assert.Equal(t, models.Saturday, updated.DayOfWeek)
	assert.Equal(t, "11:00", updated.StartTime)

	_, err = svc.UpdateAvailability(ctx, "owner", "", models.AvailabilityPayload{})
	assert.Error(t, err)
}

func TestListAvailability_WeekdayOrder(t *testing.T) {
	repo := &memoryRepo{windows: []models.AvailabilityWindow{
		{ID: "f", TutorID: "t", DayOfWeek: models.Friday, StartTime: "09:00", EndTime: "10:00"},
		{ID: "m2", TutorID: "t", DayOfWeek: models.Monday, StartTime: "13:00", EndTime: "14:00"},
		{ID: "m1", TutorID: "t", DayOfWeek: models.Monday, StartTime: "08:00", EndTime: "09:00"},
		{ID: "other", TutorID: "u", DayOfWeek: models.Monday, StartTime: "08:00", EndTime: "09:00"},
	}}
	svc := &DefaultAvailabilityService{Repo: repo}

	got, err := svc.ListAvailability(context.Background(), "t")
	require.NoError(t, err)
	var ids []string
	for _, w := range got {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"m1", "m2", "f"}, ids)

	empty, err := svc.ListAvailability(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
