package scheduling

import (
	"sync"
	"time"

	"tutorly/models"
)

// AvailabilityStore keeps the authoritative windows from the last refresh plus a
// separate, display-only list of windows created since then.
//
// A refresh replaces both wholesale; entries are never merged item by item.
type AvailabilityStore struct {
	mu          sync.RWMutex
	windows     map[models.DayOfWeek][]models.AvailabilityWindow
	staged      map[models.DayOfWeek][]models.AvailabilityWindow
	refreshedAt time.Time
}

func NewAvailabilityStore() *AvailabilityStore {
	return &AvailabilityStore{
		windows: make(map[models.DayOfWeek][]models.AvailabilityWindow),
		staged:  make(map[models.DayOfWeek][]models.AvailabilityWindow),
	}
}

// Replace swaps in a fresh authoritative list and drops any staged windows.
func (s *AvailabilityStore) Replace(all []models.AvailabilityWindow, at time.Time) {
	byDay := make(map[models.DayOfWeek][]models.AvailabilityWindow, len(models.Weekdays))
	for _, w := range all {
		byDay[w.DayOfWeek] = append(byDay[w.DayOfWeek], w)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = byDay
	s.staged = make(map[models.DayOfWeek][]models.AvailabilityWindow)
	s.refreshedAt = at
}

// StageCreated appends a just-created window to its day's optimistic list.
func (s *AvailabilityStore) StageCreated(w models.AvailabilityWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged[w.DayOfWeek] = append(s.staged[w.DayOfWeek], w)
}

// ListForDay returns the authoritative windows for day.
func (s *AvailabilityStore) ListForDay(day models.DayOfWeek) []models.AvailabilityWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWindows(s.windows[day])
}

// StagedForDay returns windows created since the last refresh.
func (s *AvailabilityStore) StagedForDay(day models.DayOfWeek) []models.AvailabilityWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWindows(s.staged[day])
}

// ViewForDay is what a UI renders: authoritative windows followed by staged ones.
func (s *AvailabilityStore) ViewForDay(day models.DayOfWeek) []models.AvailabilityWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view := make([]models.AvailabilityWindow, 0, len(s.windows[day])+len(s.staged[day]))
	view = append(view, s.windows[day]...)
	return append(view, s.staged[day]...)
}

// FirstForDay returns the first authoritative window for day, if any.
func (s *AvailabilityStore) FirstForDay(day models.DayOfWeek) (models.AvailabilityWindow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.windows[day]) == 0 {
		return models.AvailabilityWindow{}, false
	}
	return s.windows[day][0], true
}

// RefreshedAt is the time of the last authoritative refresh; zero if never.
func (s *AvailabilityStore) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

func cloneWindows(in []models.AvailabilityWindow) []models.AvailabilityWindow {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.AvailabilityWindow, len(in))
	copy(out, in)
	return out
}
