package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type serviceFixture struct {
	service  SessionService
	days     *fakeDayRepo
	sessions *fakeSessionRepo
	sets     *fakeSetRepo
	day      domain.WorkoutDay
	press    domain.Exercise
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	sets := &fakeSetRepo{}
	sessions := &fakeSessionRepo{sets: sets}
	days := &fakeDayRepo{}
	exercises := &fakeExerciseRepo{}

	day := domain.WorkoutDay{Name: "Push", SortOrder: 0}
	if _, err := days.Create(context.Background(), &day); err != nil {
		t.Fatalf("create day: %v", err)
	}
	press := domain.Exercise{
		WorkoutDayID:  day.ID,
		Name:          "Chest Press Machine",
		TargetSets:    3,
		TargetRepsMin: 10,
		TargetRepsMax: 12,
	}
	if _, err := exercises.Create(context.Background(), &press); err != nil {
		t.Fatalf("create exercise: %v", err)
	}

	history := NewHistoryService(sessions, sets)
	settings := fixedSettings{settings: domain.Settings{RestTimerSeconds: 75, WeightIncrement: 5}}
	svc := NewSessionService(days, exercises, sessions, sets, history, settings)
	return &serviceFixture{service: svc, days: days, sessions: sessions, sets: sets, day: day, press: press}
}

func TestStartWorkoutUnknownDay(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.StartWorkout(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrWorkoutDayNotFound) {
		t.Fatalf("got %v, want ErrWorkoutDayNotFound", err)
	}
}

func TestStartWorkoutBlocksWhileActive(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.service.StartWorkout(context.Background(), f.day.ID); err != nil {
		t.Fatalf("StartWorkout: %v", err)
	}
	if _, err := f.service.StartWorkout(context.Background(), f.day.ID); !errors.Is(err, ErrWorkoutInProgress) {
		t.Fatalf("got %v, want ErrWorkoutInProgress", err)
	}
}

func TestStartWorkoutBlocksOnUnresolvedIncompleteSession(t *testing.T) {
	f := newServiceFixture(t)

	// A crash left an unfinished session behind.
	addSession(t, f.sessions, f.sets, f.day.ID, f.press.ID, 1, false,
		SetPerformance{Weight: 80, Reps: 12})

	if _, err := f.service.StartWorkout(context.Background(), f.day.ID); !errors.Is(err, ErrUnresolvedSession) {
		t.Fatalf("got %v, want ErrUnresolvedSession", err)
	}

	// Discarding it unblocks the fresh start.
	if err := f.service.DiscardIncomplete(context.Background()); err != nil {
		t.Fatalf("DiscardIncomplete: %v", err)
	}
	if _, err := f.service.StartWorkout(context.Background(), f.day.ID); err != nil {
		t.Fatalf("StartWorkout after discard: %v", err)
	}
}

func TestFinishWorkoutClearsActive(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.service.StartWorkout(context.Background(), f.day.ID); err != nil {
		t.Fatalf("StartWorkout: %v", err)
	}
	if err := f.service.FinishWorkout(context.Background()); err != nil {
		t.Fatalf("FinishWorkout: %v", err)
	}
	if _, err := f.service.ActiveWorkout(); !errors.Is(err, ErrNoActiveWorkout) {
		t.Fatalf("got %v, want ErrNoActiveWorkout", err)
	}
	if err := f.service.FinishWorkout(context.Background()); !errors.Is(err, ErrNoActiveWorkout) {
		t.Fatalf("second finish: got %v, want ErrNoActiveWorkout", err)
	}
}

func TestCancelWorkoutIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.service.StartWorkout(context.Background(), f.day.ID); err != nil {
		t.Fatalf("StartWorkout: %v", err)
	}
	if err := f.service.CancelWorkout(context.Background()); err != nil {
		t.Fatalf("CancelWorkout: %v", err)
	}
	// Cancelling again, or with nothing ever started, is a quiet no-op.
	if err := f.service.CancelWorkout(context.Background()); err != nil {
		t.Fatalf("second CancelWorkout: %v", err)
	}

	fresh := newServiceFixture(t)
	if err := fresh.service.CancelWorkout(context.Background()); err != nil {
		t.Fatalf("CancelWorkout with no workout: %v", err)
	}
}

func TestResumeIncomplete(t *testing.T) {
	f := newServiceFixture(t)

	sessionID := addSession(t, f.sessions, f.sets, f.day.ID, f.press.ID, 0, false,
		SetPerformance{Weight: 80, Reps: 12},
		SetPerformance{Weight: 80, Reps: 11})

	workout, err := f.service.ResumeIncomplete(context.Background())
	if err != nil {
		t.Fatalf("ResumeIncomplete: %v", err)
	}
	if workout.State() != SessionActive {
		t.Fatalf("state = %s, want active", workout.State())
	}
	if workout.Session().ID != sessionID {
		t.Fatal("resumed the wrong session")
	}

	restored := workout.SetsForExercise(f.press.ID)
	if len(restored) != 2 {
		t.Fatalf("restored sets = %d, want 2", len(restored))
	}
	if restored[0].Weight != 80 || restored[0].Reps != 12 {
		t.Errorf("restored set 1 = %vx%d", restored[0].Weight, restored[0].Reps)
	}

	// The resumed workout can be finished normally.
	if err := f.service.FinishWorkout(context.Background()); err != nil {
		t.Fatalf("FinishWorkout: %v", err)
	}
	stored, err := f.sessions.GetByID(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.IsCompleted {
		t.Fatal("resumed session not finalized")
	}
}

func TestResumeIncompleteWithoutOne(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.service.ResumeIncomplete(context.Background()); !errors.Is(err, ErrNoIncompleteSession) {
		t.Fatalf("got %v, want ErrNoIncompleteSession", err)
	}
	if err := f.service.DiscardIncomplete(context.Background()); !errors.Is(err, ErrNoIncompleteSession) {
		t.Fatalf("discard: got %v, want ErrNoIncompleteSession", err)
	}
}

func TestDiscardIncompleteDeletesSets(t *testing.T) {
	f := newServiceFixture(t)

	sessionID := addSession(t, f.sessions, f.sets, f.day.ID, f.press.ID, 0, false,
		SetPerformance{Weight: 80, Reps: 12})

	if err := f.service.DiscardIncomplete(context.Background()); err != nil {
		t.Fatalf("DiscardIncomplete: %v", err)
	}

	if _, err := f.sessions.GetByID(context.Background(), sessionID); err == nil {
		t.Fatal("session should be deleted")
	}
	remaining, err := f.sets.GetBySessionID(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetBySessionID: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("%d sets survived discard", len(remaining))
	}
}

func TestStartWorkoutKeepsEngineOnFlushFailure(t *testing.T) {
	f := newServiceFixture(t)

	f.sets.err = errStorageDown
	workout, err := f.service.StartWorkout(context.Background(), f.day.ID)
	if !errors.Is(err, errStorageDown) {
		t.Fatalf("got %v, want the storage error surfaced", err)
	}
	if workout == nil {
		t.Fatal("engine must be returned alongside the flush error")
	}
	if workout.State() != SessionActive {
		t.Fatal("workout should be live in memory despite the failure")
	}
}
