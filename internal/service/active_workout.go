package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrInvalidSessionState marks a caller-side state-machine misuse, e.g.
	// finishing a workout that never started. It is never swallowed.
	ErrInvalidSessionState = errors.New("operation not valid in current session state")
	ErrSetNotInSession     = errors.New("set does not belong to the current session")
	ErrExerciseNotInDay    = errors.New("exercise does not belong to the session's workout day")
)

// SessionState is the lifecycle position of an ActiveWorkout.
type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionActive     SessionState = "active"
	SessionFinished   SessionState = "finished"
	SessionCancelled  SessionState = "cancelled"
)

// ActiveWorkout is the live, mutable workout session engine. One instance
// is bound to one WorkoutDay and walks NotStarted -> Active ->
// Finished/Cancelled. Every mutation is applied to the in-memory state
// first and then flushed; a flush failure leaves the workout Active with
// the mutation visible in memory and is returned to the caller, who can
// retry or surface it.
type ActiveWorkout struct {
	mu sync.Mutex

	state     SessionState
	day       domain.WorkoutDay
	exercises []domain.Exercise // Ordered by sortOrder

	session *domain.WorkoutSession
	sets    map[primitive.ObjectID][]domain.ExerciseSet // Exercise ID -> sets ordered by setNumber
	skipped map[primitive.ObjectID]struct{}             // Session-scoped, cleared on start

	timer        *RestTimer
	timerSeconds int // Read once at session start; later settings changes do not apply

	sessionRepo repository.SessionRepository
	setRepo     repository.ExerciseSetRepository
	history     HistoryService

	now func() time.Time
}

// NewActiveWorkout creates an engine for the given day, in NotStarted.
// The exercises must be the day's prescriptions in sortOrder.
func NewActiveWorkout(
	day domain.WorkoutDay,
	exercises []domain.Exercise,
	sessionRepo repository.SessionRepository,
	setRepo repository.ExerciseSetRepository,
	history HistoryService,
	restTimerSeconds int,
) *ActiveWorkout {
	return &ActiveWorkout{
		state:        SessionNotStarted,
		day:          day,
		exercises:    exercises,
		sets:         make(map[primitive.ObjectID][]domain.ExerciseSet),
		skipped:      make(map[primitive.ObjectID]struct{}),
		timer:        NewRestTimer(),
		timerSeconds: restTimerSeconds,
		sessionRepo:  sessionRepo,
		setRepo:      setRepo,
		history:      history,
		now:          time.Now,
	}
}

// Start transitions NotStarted -> Active. It creates the session and seeds
// one set per target set per exercise: the most recent same-day performance
// per set position when history exists, otherwise weight 0 and the top of
// the rep range. The engine becomes Active even if persistence fails; the
// returned error then signals "applied in memory only".
func (w *ActiveWorkout) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SessionNotStarted {
		return fmt.Errorf("%w: start from %s", ErrInvalidSessionState, w.state)
	}

	session := &domain.WorkoutSession{
		ID:           primitive.NewObjectID(),
		WorkoutDayID: w.day.ID,
		Date:         w.now(),
		IsCompleted:  false,
	}

	var seeded []domain.ExerciseSet
	for _, exercise := range w.exercises {
		previous, err := w.history.LastPerformance(ctx, w.day.ID, exercise.ID)
		if err != nil {
			return fmt.Errorf("history lookup for %q: %w", exercise.Name, err)
		}

		exerciseSets := make([]domain.ExerciseSet, 0, exercise.TargetSets)
		for setNum := 1; setNum <= exercise.TargetSets; setNum++ {
			set := domain.ExerciseSet{
				ID:         primitive.NewObjectID(),
				ExerciseID: exercise.ID,
				SessionID:  session.ID,
				SetNumber:  setNum,
				Reps:       exercise.TargetRepsMax,
			}
			if perf, ok := previous[setNum-1]; ok {
				set.Weight = perf.Weight
				set.Reps = perf.Reps
			}
			exerciseSets = append(exerciseSets, set)
			seeded = append(seeded, set)
		}
		w.sets[exercise.ID] = exerciseSets
	}

	w.session = session
	w.skipped = make(map[primitive.ObjectID]struct{})
	w.state = SessionActive

	if _, err := w.sessionRepo.Create(ctx, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if _, err := w.setRepo.CreateMany(ctx, seeded); err != nil {
		return fmt.Errorf("persist seeded sets: %w", err)
	}
	return nil
}

// resume rehydrates an Active engine from a stored incomplete session.
func (w *ActiveWorkout) resume(session *domain.WorkoutSession, sets []domain.ExerciseSet) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.session = session
	w.sets = make(map[primitive.ObjectID][]domain.ExerciseSet)
	for _, set := range sets {
		w.sets[set.ExerciseID] = append(w.sets[set.ExerciseID], set)
	}
	w.skipped = make(map[primitive.ObjectID]struct{})
	w.state = SessionActive
}

// CompleteSet marks a set done, persists it, and (re)starts the rest
// countdown. Any countdown already running is replaced.
func (w *ActiveWorkout) CompleteSet(ctx context.Context, setID primitive.ObjectID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SessionActive {
		return fmt.Errorf("%w: complete set from %s", ErrInvalidSessionState, w.state)
	}
	set := w.findSetLocked(setID)
	if set == nil {
		return ErrSetNotInSession
	}

	completedAt := w.now()
	set.IsCompleted = true
	set.CompletedAt = &completedAt

	w.timer.Start(w.timerSeconds)

	if err := w.setRepo.Update(ctx, set); err != nil {
		return fmt.Errorf("persist set completion: %w", err)
	}
	return nil
}

// UncompleteSet reverts a set to not done and persists the change. The
// rest timer is left alone.
func (w *ActiveWorkout) UncompleteSet(ctx context.Context, setID primitive.ObjectID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SessionActive {
		return fmt.Errorf("%w: uncomplete set from %s", ErrInvalidSessionState, w.state)
	}
	set := w.findSetLocked(setID)
	if set == nil {
		return ErrSetNotInSession
	}

	set.IsCompleted = false
	set.CompletedAt = nil

	if err := w.setRepo.Update(ctx, set); err != nil {
		return fmt.Errorf("persist set update: %w", err)
	}
	return nil
}

// UpdateSet edits a set's logged weight and reps and persists the change.
func (w *ActiveWorkout) UpdateSet(ctx context.Context, setID primitive.ObjectID, weight float64, reps int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SessionActive {
		return fmt.Errorf("%w: update set from %s", ErrInvalidSessionState, w.state)
	}
	if weight < 0 || reps < 0 {
		return fmt.Errorf("weight and reps must be >= 0")
	}
	set := w.findSetLocked(setID)
	if set == nil {
		return ErrSetNotInSession
	}

	set.Weight = weight
	set.Reps = reps

	if err := w.setRepo.Update(ctx, set); err != nil {
		return fmt.Errorf("persist set update: %w", err)
	}
	return nil
}

// SkipExercise flags an exercise as skipped for this session only. Stored
// sets are untouched until Finish, which purges them.
func (w *ActiveWorkout) SkipExercise(exerciseID primitive.ObjectID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SessionActive {
		return fmt.Errorf("%w: skip exercise from %s", ErrInvalidSessionState, w.state)
	}
	if !w.hasExerciseLocked(exerciseID) {
		return ErrExerciseNotInDay
	}
	w.skipped[exerciseID] = struct{}{}
	return nil
}

// UnskipExercise removes the skip flag.
func (w *ActiveWorkout) UnskipExercise(exerciseID primitive.ObjectID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SessionActive {
		return fmt.Errorf("%w: unskip exercise from %s", ErrInvalidSessionState, w.state)
	}
	if !w.hasExerciseLocked(exerciseID) {
		return ErrExerciseNotInDay
	}
	delete(w.skipped, exerciseID)
	return nil
}

// IsExerciseSkipped reports whether the exercise is currently skipped.
func (w *ActiveWorkout) IsExerciseSkipped(exerciseID primitive.ObjectID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.skipped[exerciseID]
	return ok
}

// Finish finalizes the session: marks it completed, purges the sets of
// skipped exercises (they are not part of the historical record), stops
// the rest timer, and transitions to Finished. On a persistence failure
// the workout stays Active so the caller can retry.
func (w *ActiveWorkout) Finish(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SessionActive {
		return fmt.Errorf("%w: finish from %s", ErrInvalidSessionState, w.state)
	}

	w.session.IsCompleted = true
	if err := w.sessionRepo.Update(ctx, w.session); err != nil {
		w.session.IsCompleted = false
		return fmt.Errorf("persist session completion: %w", err)
	}

	for _, exercise := range w.exercises {
		if _, skipped := w.skipped[exercise.ID]; !skipped {
			continue
		}
		if err := w.setRepo.DeleteBySessionAndExercise(ctx, w.session.ID, exercise.ID); err != nil {
			// Still Active; a retry re-issues the (idempotent) deletes.
			return fmt.Errorf("purge skipped sets for %q: %w", exercise.Name, err)
		}
		delete(w.sets, exercise.ID)
	}

	w.timer.Stop()
	w.state = SessionFinished
	return nil
}

// Cancel deletes the session and, via cascade, all of its sets. No partial
// record survives. On a persistence failure the workout stays Active.
func (w *ActiveWorkout) Cancel(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SessionActive {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidSessionState, w.state)
	}

	if err := w.sessionRepo.Delete(ctx, w.session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	w.timer.Stop()
	w.state = SessionCancelled
	return nil
}

// --- Progress accounting ---

// CompletedSetsCount counts completed sets across all tracked exercises.
// Completed work already logged counts even when its exercise is currently
// skipped.
func (w *ActiveWorkout) CompletedSetsCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	count := 0
	for _, exerciseSets := range w.sets {
		for _, set := range exerciseSets {
			if set.IsCompleted {
				count++
			}
		}
	}
	return count
}

// TotalSetsCount sums target sets over the exercises not currently skipped.
func (w *ActiveWorkout) TotalSetsCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalSetsLocked()
}

func (w *ActiveWorkout) totalSetsLocked() int {
	total := 0
	for _, exercise := range w.exercises {
		if _, skipped := w.skipped[exercise.ID]; skipped {
			continue
		}
		total += exercise.TargetSets
	}
	return total
}

// Progress is the completed/total ratio, 0 when nothing is tracked.
func (w *ActiveWorkout) Progress() float64 {
	completed := w.CompletedSetsCount()

	w.mu.Lock()
	total := w.totalSetsLocked()
	w.mu.Unlock()

	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// --- Accessors ---

// State returns the engine's lifecycle position.
func (w *ActiveWorkout) State() SessionState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Day returns the workout day the engine is bound to.
func (w *ActiveWorkout) Day() domain.WorkoutDay {
	return w.day
}

// Exercises returns the day's prescriptions in order.
func (w *ActiveWorkout) Exercises() []domain.Exercise {
	return w.exercises
}

// Session returns a copy of the underlying session, or nil before start.
func (w *ActiveWorkout) Session() *domain.WorkoutSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session == nil {
		return nil
	}
	session := *w.session
	return &session
}

// SetsForExercise returns copies of an exercise's sets, by set number.
func (w *ActiveWorkout) SetsForExercise(exerciseID primitive.ObjectID) []domain.ExerciseSet {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.ExerciseSet(nil), w.sets[exerciseID]...)
}

// SkippedExercises returns the currently skipped exercise IDs.
func (w *ActiveWorkout) SkippedExercises() []primitive.ObjectID {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]primitive.ObjectID, 0, len(w.skipped))
	for id := range w.skipped {
		ids = append(ids, id)
	}
	return ids
}

// Timer returns the session's rest timer.
func (w *ActiveWorkout) Timer() *RestTimer {
	return w.timer
}

func (w *ActiveWorkout) findSetLocked(setID primitive.ObjectID) *domain.ExerciseSet {
	for exerciseID := range w.sets {
		exerciseSets := w.sets[exerciseID]
		for i := range exerciseSets {
			if exerciseSets[i].ID == setID {
				return &exerciseSets[i]
			}
		}
	}
	return nil
}

func (w *ActiveWorkout) hasExerciseLocked(exerciseID primitive.ObjectID) bool {
	for _, exercise := range w.exercises {
		if exercise.ID == exerciseID {
			return true
		}
	}
	return false
}
