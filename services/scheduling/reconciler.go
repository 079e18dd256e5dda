package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tutorly/models"

	"go.uber.org/zap"
)

// EditState is a step of the availability edit state machine:
// Idle → Editing → Validating → {Committing | Rejected} → Idle.
type EditState string

const (
	StateIdle       EditState = "idle"
	StateEditing    EditState = "editing"
	StateValidating EditState = "validating"
	StateRejected   EditState = "rejected"
	StateCommitting EditState = "committing"
)

// Bound selects which end of the window a field edit applies to.
type Bound string

const (
	BoundFrom Bound = "from"
	BoundTo   Bound = "to"
)

// Field selects which part of a 12-hour reading is edited.
type Field string

const (
	FieldHour     Field = "hour"
	FieldMinute   Field = "minute"
	FieldMeridiem Field = "meridiem"
)

// EditingSession is the staged edit for one day. TargetID is set when the edit
// updates a persisted window and empty when it creates a new one.
type EditingSession struct {
	Day      models.DayOfWeek `json:"dayOfWeek"`
	From     TimeInput        `json:"from"`
	To       TimeInput        `json:"to"`
	TargetID string           `json:"targetId,omitempty"`
}

// IsUpdate reports whether saving this edit issues an update-by-id.
func (s EditingSession) IsUpdate() bool { return s.TargetID != "" }

// Payload converts the staged edit into the wire payload and validates it.
func (s EditingSession) Payload() (models.AvailabilityPayload, error) {
	start, err := s.From.Canonical()
	if err != nil {
		return models.AvailabilityPayload{}, prefixField(err, "from")
	}
	end, err := s.To.Canonical()
	if err != nil {
		return models.AvailabilityPayload{}, prefixField(err, "to")
	}
	if err := Validate(start, end); err != nil {
		return models.AvailabilityPayload{}, err
	}
	return models.AvailabilityPayload{DayOfWeek: s.Day, StartTime: start, EndTime: end}, nil
}

func prefixField(err error, bound string) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		cp := *ve
		cp.Field = bound + "." + ve.Field
		return &cp
	}
	return err
}

// TransitionFunc observes state changes. It runs with the reconciler locked and
// must not call back into it.
type TransitionFunc func(from, to EditState)

// Reconciler drives single-flight availability edits against the persistence
// collaborator and keeps the store in step with server truth.
type Reconciler struct {
	Store    *AvailabilityStore
	Backend  AvailabilityBackend
	Notifier Notifier
	Now      func() time.Time
	Logger   *zap.Logger
	OnChange TransitionFunc

	mu      sync.Mutex
	state   EditState
	session *EditingSession
}

func NewReconciler(store *AvailabilityStore, backend AvailabilityBackend, notifier Notifier, logger *zap.Logger) (*Reconciler, error) {
	if store == nil || backend == nil || notifier == nil {
		return nil, fmt.Errorf("reconciler initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		Store:    store,
		Backend:  backend,
		Notifier: notifier,
		Now:      time.Now,
		Logger:   logger,
		state:    StateIdle,
	}, nil
}

// State returns the current state.
func (r *Reconciler) State() EditState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentState()
}

// Session returns a copy of the open edit, if any.
func (r *Reconciler) Session() (EditingSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return EditingSession{}, false
	}
	return *r.session, true
}

// ViewForDay resolves what the UI shows for day, including optimistic entries.
func (r *Reconciler) ViewForDay(day models.DayOfWeek) []models.AvailabilityWindow {
	return r.Store.ViewForDay(day)
}

// OpenEdit stages an edit for day. It pre-populates from the first persisted
// window of that day, or from the current wall-clock time when there is none.
// Further windows on the same day are not reachable through this flow.
func (r *Reconciler) OpenEdit(day models.DayOfWeek) (EditingSession, error) {
	if !day.Valid() {
		return EditingSession{}, newValidationError(CodeInvalidDay, "dayOfWeek", fmt.Sprintf("unknown day of week %q", day))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.currentState() {
	case StateValidating, StateCommitting:
		return EditingSession{}, ErrCommitInFlight
	case StateEditing:
		return EditingSession{}, ErrEditInProgress
	}

	sess := EditingSession{Day: day}
	if w, ok := r.Store.FirstForDay(day); ok {
		from, fromErr := FromCanonical(w.StartTime)
		to, toErr := FromCanonical(w.EndTime)
		if fromErr == nil && toErr == nil {
			sess.From, sess.To = from, to
			sess.TargetID = w.ID
		} else {
			r.log().Warn("Stored window has malformed bounds; editing as new",
				zap.String("windowID", w.ID), zap.String("start", w.StartTime), zap.String("end", w.EndTime))
		}
	}
	if sess.TargetID == "" {
		now := FromClock(r.now())
		sess.From, sess.To = now, now
	}

	r.session = &sess
	r.transition(StateEditing)
	return sess, nil
}

// UpdateField changes one field of the staged edit.
func (r *Reconciler) UpdateField(bound Bound, field Field, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireEditing(); err != nil {
		return err
	}

	var target *TimeInput
	switch bound {
	case BoundFrom:
		target = &r.session.From
	case BoundTo:
		target = &r.session.To
	default:
		return fmt.Errorf("unknown bound %q", bound)
	}

	switch field {
	case FieldHour:
		target.Hour = value
	case FieldMinute:
		target.Minute = value
	case FieldMeridiem:
		m, err := ParseMeridiem(value)
		if err != nil {
			return err
		}
		target.Meridiem = m
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// SetTime replaces a whole bound of the staged edit.
func (r *Reconciler) SetTime(bound Bound, in TimeInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireEditing(); err != nil {
		return err
	}
	switch bound {
	case BoundFrom:
		r.session.From = in
	case BoundTo:
		r.session.To = in
	default:
		return fmt.Errorf("unknown bound %q", bound)
	}
	return nil
}

// Cancel discards the staged edit.
func (r *Reconciler) Cancel() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.currentState() {
	case StateValidating, StateCommitting:
		return ErrCommitInFlight
	case StateIdle:
		return nil
	}
	r.session = nil
	r.transition(StateIdle)
	return nil
}

// Save validates the staged edit and commits it. On a validation failure no
// request is made and the edit stays open. On a persistence failure the edit
// also stays open with the user's input intact. On success the store is
// refreshed from the server and the edit is closed.
func (r *Reconciler) Save(ctx context.Context) (*models.AvailabilityWindow, error) {
	r.mu.Lock()
	switch r.currentState() {
	case StateValidating, StateCommitting:
		r.mu.Unlock()
		return nil, ErrCommitInFlight
	case StateIdle:
		r.mu.Unlock()
		return nil, ErrNoEditSession
	}

	r.transition(StateValidating)
	sess := *r.session
	payload, err := sess.Payload()
	if err != nil {
		r.transition(StateRejected)
		r.transition(StateEditing)
		r.mu.Unlock()

		r.log().Debug("Availability edit rejected", zap.String("day", string(sess.Day)), zap.Error(err))
		r.Notifier.Notify(AlertTransient, alertMessage(err))
		return nil, err
	}
	r.transition(StateCommitting)
	r.mu.Unlock()

	op := "create"
	var saved *models.AvailabilityWindow
	if sess.IsUpdate() {
		op = "update"
		saved, err = r.Backend.UpdateAvailability(ctx, sess.TargetID, payload)
	} else {
		saved, err = r.Backend.CreateAvailability(ctx, payload)
	}
	if err == nil && (saved == nil || saved.ID == "") {
		err = errors.New("server returned no saved window")
	}
	if err != nil {
		err = r.persistenceFailure(op, err)
		r.mu.Lock()
		r.transition(StateEditing)
		r.mu.Unlock()

		r.log().Error("Failed to save availability", zap.String("op", op), zap.String("day", string(sess.Day)), zap.Error(err))
		r.Notifier.Notify(AlertBlocking, alertMessage(err))
		return nil, err
	}

	if !sess.IsUpdate() {
		r.Store.StageCreated(*saved)
	}

	refreshErr := r.Refresh(ctx)

	r.mu.Lock()
	r.session = nil
	r.transition(StateIdle)
	r.mu.Unlock()

	r.log().Info("Availability saved",
		zap.String("op", op),
		zap.String("windowID", saved.ID),
		zap.String("day", string(saved.DayOfWeek)),
		zap.String("start", saved.StartTime),
		zap.String("end", saved.EndTime))

	if refreshErr != nil {
		r.Notifier.Notify(AlertBlocking, alertMessage(refreshErr))
		return saved, refreshErr
	}
	return saved, nil
}

// Refresh replaces the store contents with the server's list.
func (r *Reconciler) Refresh(ctx context.Context) error {
	windows, err := r.Backend.ListAvailability(ctx)
	if err != nil {
		return r.persistenceFailure("list", err)
	}
	r.Store.Replace(windows, r.now())
	return nil
}

func (r *Reconciler) persistenceFailure(op string, err error) error {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}
	return &PersistenceError{Op: op, Err: err}
}

func (r *Reconciler) requireEditing() error {
	switch r.currentState() {
	case StateValidating, StateCommitting:
		return ErrCommitInFlight
	case StateIdle:
		return ErrNoEditSession
	}
	return nil
}

func (r *Reconciler) currentState() EditState {
	if r.state == "" {
		return StateIdle
	}
	return r.state
}

// transition must be called with r.mu held.
func (r *Reconciler) transition(to EditState) {
	from := r.currentState()
	r.state = to
	if r.OnChange != nil {
		r.OnChange(from, to)
	}
}

func (r *Reconciler) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func alertMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

func (r *Reconciler) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
