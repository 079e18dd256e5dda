package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu      sync.Mutex
	windows []models.AvailabilityWindow
	nextID  int

	creates []models.AvailabilityPayload
	updates map[string]models.AvailabilityPayload
	lists   int

	writeErr error
	listErr  error
	// blank makes writes succeed with a window that carries no ID.
	blank bool
	// gate, when set, blocks writes until it is closed.
	gate    chan struct{}
	entered chan struct{}
}

func newFakeBackend(existing ...models.AvailabilityWindow) *fakeBackend {
	return &fakeBackend{windows: existing, updates: map[string]models.AvailabilityPayload{}}
}

func (f *fakeBackend) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeBackend) CreateAvailability(_ context.Context, p models.AvailabilityPayload) (*models.AvailabilityWindow, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, p)
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.blank {
		return &models.AvailabilityWindow{}, nil
	}
	f.nextID++
	w := models.AvailabilityWindow{
		ID:        fmt.Sprintf("w-%d", f.nextID),
		DayOfWeek: p.DayOfWeek,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Status:    models.AvailabilityStatusActive,
	}
	f.windows = append(f.windows, w)
	return &w, nil
}

func (f *fakeBackend) UpdateAvailability(_ context.Context, id string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = p
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	for i := range f.windows {
		if f.windows[i].ID == id {
			f.windows[i].DayOfWeek = p.DayOfWeek
			f.windows[i].StartTime = p.StartTime
			f.windows[i].EndTime = p.EndTime
			w := f.windows[i]
			return &w, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) ListAvailability(context.Context) ([]models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.AvailabilityWindow, len(f.windows))
	copy(out, f.windows)
	return out, nil
}

type recordedAlert struct {
	kind AlertKind
	msg  string
}

type alertRecorder struct {
	mu     sync.Mutex
	alerts []recordedAlert
}

func (a *alertRecorder) Notify(kind AlertKind, msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, recordedAlert{kind, msg})
}

func (a *alertRecorder) all() []recordedAlert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]recordedAlert(nil), a.alerts...)
}

var fixedNow = time.Date(2026, 10, 12, 8, 42, 0, 0, time.UTC) // a Monday

func newTestReconciler(t *testing.T, backend *fakeBackend) (*Reconciler, *alertRecorder) {
	t.Helper()
	alerts := &alertRecorder{}
	r, err := NewReconciler(NewAvailabilityStore(), backend, alerts, nil)
	require.NoError(t, err)
	r.Now = func() time.Time { return fixedNow }
	require.NoError(t, r.Refresh(context.Background()))
	return r, alerts
}

func setBounds(t *testing.T, r *Reconciler, from, to string) {
	t.Helper()
	fromIn, err := ParseClock12(from)
	require.NoError(t, err)
	toIn, err := ParseClock12(to)
	require.NoError(t, err)
	require.NoError(t, r.SetTime(BoundFrom, fromIn))
	require.NoError(t, r.SetTime(BoundTo, toIn))
}

func TestNewReconciler_NilDependencies(t *testing.T) {
	_, err := NewReconciler(nil, newFakeBackend(), &alertRecorder{}, nil)
	assert.Error(t, err)
}

func TestReconciler_CreateEndToEnd(t *testing.T) {
	backend := newFakeBackend()
	r, alerts := newTestReconciler(t, backend)

	sess, err := r.OpenEdit(models.Monday)
	require.NoError(t, err)
	assert.Equal(t, StateEditing, r.State())
	assert.False(t, sess.IsUpdate())
	assert.Equal(t, FromClock(fixedNow), sess.From)
	assert.Equal(t, FromClock(fixedNow), sess.To)

	setBounds(t, r, "09:00 AM", "05:00 PM")

	saved, err := r.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)

	require.Len(t, backend.creates, 1)
	assert.Equal(t, models.AvailabilityPayload{DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "17:00"}, backend.creates[0])
	assert.Empty(t, backend.updates)
	assert.Equal(t, 2, backend.lists, "initial load plus refetch after save")

	list := r.Store.ListForDay(models.Monday)
	require.Len(t, list, 1)
	assert.Equal(t, "09:00", list[0].StartTime)
	assert.Equal(t, "17:00", list[0].EndTime)
	assert.Len(t, r.ViewForDay(models.Monday), 1)

	assert.Equal(t, StateIdle, r.State())
	_, open := r.Session()
	assert.False(t, open)
	assert.Empty(t, alerts.all())
}

func TestReconciler_UpdatesFirstWindowOnly(t *testing.T) {
	backend := newFakeBackend(
		models.AvailabilityWindow{ID: "first", DayOfWeek: models.Tuesday, StartTime: "08:00", EndTime: "12:00"},
		models.AvailabilityWindow{ID: "second", DayOfWeek: models.Tuesday, StartTime: "14:00", EndTime: "18:00"},
	)
	r, _ := newTestReconciler(t, backend)

	sess, err := r.OpenEdit(models.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, "first", sess.TargetID)
	assert.Equal(t, TimeInput{Hour: "08", Minute: "00", Meridiem: AM}, sess.From)
	assert.Equal(t, TimeInput{Hour: "12", Minute: "00", Meridiem: PM}, sess.To)

	require.NoError(t, r.UpdateField(BoundTo, FieldHour, "1"))

	_, err = r.Save(context.Background())
	require.NoError(t, err)

	assert.Empty(t, backend.creates, "an update must not issue a create")
	require.Contains(t, backend.updates, "first")
	assert.Equal(t, "13:00", backend.updates["first"].EndTime)
	assert.Empty(t, r.Store.StagedForDay(models.Tuesday))
	assert.Len(t, r.Store.ListForDay(models.Tuesday), 2)
}

func TestReconciler_RejectsSameBounds(t *testing.T) {
	backend := newFakeBackend()
	r, alerts := newTestReconciler(t, backend)

	var path []EditState
	r.OnChange = func(_, to EditState) { path = append(path, to) }

	_, err := r.OpenEdit(models.Monday)
	require.NoError(t, err)
	setBounds(t, r, "06:00 PM", "06:00 PM")
	before, _ := r.Session()

	_, err = r.Save(context.Background())
	require.Error(t, err)
	assert.True(t, IsValidationError(err, CodeSameStartEnd))

	assert.Empty(t, backend.creates)
	assert.Empty(t, backend.updates)
	assert.Equal(t, StateEditing, r.State())
	after, open := r.Session()
	require.True(t, open)
	assert.Equal(t, before, after)

	got := alerts.all()
	require.Len(t, got, 1)
	assert.Equal(t, AlertTransient, got[0].kind)

	assert.Equal(t, []EditState{StateEditing, StateValidating, StateRejected, StateEditing}, path)
}

func TestReconciler_MissingHourIsRejected(t *testing.T) {
	r, _ := newTestReconciler(t, newFakeBackend())
	_, err := r.OpenEdit(models.Sunday)
	require.NoError(t, err)
	require.NoError(t, r.UpdateField(BoundFrom, FieldHour, ""))

	_, err = r.Save(context.Background())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CodeMissingField, ve.Code)
	assert.Equal(t, "from.hour", ve.Field)
}

func TestReconciler_PersistenceFailureKeepsInput(t *testing.T) {
	backend := newFakeBackend()
	backend.writeErr = errors.New("connection reset")
	r, alerts := newTestReconciler(t, backend)

	_, err := r.OpenEdit(models.Friday)
	require.NoError(t, err)
	setBounds(t, r, "10:00 AM", "11:30 AM")
	staged, _ := r.Session()

	_, err = r.Save(context.Background())
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create", pe.Op)

	assert.Equal(t, StateEditing, r.State())
	kept, open := r.Session()
	require.True(t, open)
	assert.Equal(t, staged, kept)
	assert.Empty(t, r.Store.StagedForDay(models.Friday))

	got := alerts.all()
	require.Len(t, got, 1)
	assert.Equal(t, AlertBlocking, got[0].kind)

	backend.writeErr = nil
	_, err = r.Save(context.Background())
	require.NoError(t, err)
	assert.Len(t, r.Store.ListForDay(models.Friday), 1)
}

func TestReconciler_BlankSaveResultIsAFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.blank = true
	r, alerts := newTestReconciler(t, backend)

	_, err := r.OpenEdit(models.Thursday)
	require.NoError(t, err)
	setBounds(t, r, "09:00 AM", "10:00 AM")
	staged, _ := r.Session()

	saved, err := r.Save(context.Background())
	assert.Nil(t, saved)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create", pe.Op)

	assert.Empty(t, r.Store.StagedForDay(models.Thursday))
	assert.Equal(t, StateEditing, r.State())
	kept, open := r.Session()
	require.True(t, open)
	assert.Equal(t, staged, kept)

	got := alerts.all()
	require.Len(t, got, 1)
	assert.Equal(t, AlertBlocking, got[0].kind)
}

func TestReconciler_AuthErrorPassesThrough(t *testing.T) {
	backend := newFakeBackend()
	backend.writeErr = &AuthError{}
	r, _ := newTestReconciler(t, backend)

	_, err := r.OpenEdit(models.Friday)
	require.NoError(t, err)
	setBounds(t, r, "10:00 AM", "11:00 AM")

	_, err = r.Save(context.Background())
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Len(t, backend.creates, 1, "auth failures are not retried")
	assert.Equal(t, StateEditing, r.State())
}

func TestReconciler_RefreshFailureAfterCreateKeepsOptimisticCopy(t *testing.T) {
	backend := newFakeBackend()
	r, alerts := newTestReconciler(t, backend)
	backend.listErr = errors.New("timeout")

	_, err := r.OpenEdit(models.Thursday)
	require.NoError(t, err)
	setBounds(t, r, "01:00 PM", "02:00 PM")

	saved, err := r.Save(context.Background())
	require.NotNil(t, saved)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "list", pe.Op)

	assert.Equal(t, StateIdle, r.State())
	assert.Empty(t, r.Store.ListForDay(models.Thursday))
	assert.Len(t, r.ViewForDay(models.Thursday), 1)
	assert.Len(t, alerts.all(), 1)
}

func TestReconciler_SingleFlight(t *testing.T) {
	backend := newFakeBackend()
	r, _ := newTestReconciler(t, backend)
	backend.gate = make(chan struct{})
	backend.entered = make(chan struct{}, 1)

	_, err := r.OpenEdit(models.Monday)
	require.NoError(t, err)
	setBounds(t, r, "09:00 AM", "10:00 AM")

	done := make(chan error, 1)
	go func() {
		_, err := r.Save(context.Background())
		done <- err
	}()

	<-backend.entered
	assert.Equal(t, StateCommitting, r.State())

	_, err = r.OpenEdit(models.Tuesday)
	assert.ErrorIs(t, err, ErrCommitInFlight)
	_, err = r.Save(context.Background())
	assert.ErrorIs(t, err, ErrCommitInFlight)
	assert.ErrorIs(t, r.Cancel(), ErrCommitInFlight)
	assert.ErrorIs(t, r.UpdateField(BoundFrom, FieldHour, "8"), ErrCommitInFlight)

	close(backend.gate)
	require.NoError(t, <-done)

	backend.mu.Lock()
	assert.Len(t, backend.creates, 1)
	backend.mu.Unlock()
	assert.Equal(t, StateIdle, r.State())

	_, err = r.OpenEdit(models.Tuesday)
	assert.NoError(t, err)
}

func TestReconciler_OneEditAtATime(t *testing.T) {
	r, _ := newTestReconciler(t, newFakeBackend())

	_, err := r.OpenEdit(models.Monday)
	require.NoError(t, err)
	_, err = r.OpenEdit(models.Tuesday)
	assert.ErrorIs(t, err, ErrEditInProgress)

	require.NoError(t, r.Cancel())
	assert.Equal(t, StateIdle, r.State())
	_, err = r.OpenEdit(models.Tuesday)
	assert.NoError(t, err)
}

func TestReconciler_IdleMisuse(t *testing.T) {
	r, _ := newTestReconciler(t, newFakeBackend())

	_, err := r.Save(context.Background())
	assert.ErrorIs(t, err, ErrNoEditSession)
	assert.ErrorIs(t, r.UpdateField(BoundFrom, FieldHour, "9"), ErrNoEditSession)
	assert.NoError(t, r.Cancel())

	_, err = r.OpenEdit("FUNDAY")
	assert.True(t, IsValidationError(err, CodeInvalidDay))
}

func TestReconciler_UpdateFieldMeridiem(t *testing.T) {
	r, _ := newTestReconciler(t, newFakeBackend())
	_, err := r.OpenEdit(models.Saturday)
	require.NoError(t, err)

	require.NoError(t, r.UpdateField(BoundFrom, FieldMeridiem, "pm"))
	sess, _ := r.Session()
	assert.Equal(t, PM, sess.From.Meridiem)

	err = r.UpdateField(BoundFrom, FieldMeridiem, "noon")
	assert.True(t, IsValidationError(err, CodeInvalidTime))
	assert.Error(t, r.UpdateField("middle", FieldHour, "9"))
	assert.Error(t, r.UpdateField(BoundTo, "second", "9"))
}
