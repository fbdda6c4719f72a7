package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProgressFixture(t *testing.T) (ProgressService, *fakeDayRepo, *fakeExerciseRepo, *fakeSessionRepo, *fakeSetRepo) {
	t.Helper()
	sets := &fakeSetRepo{}
	sessions := &fakeSessionRepo{sets: sets}
	days := &fakeDayRepo{}
	exercises := &fakeExerciseRepo{}
	return NewProgressService(days, exercises, sessions, sets), days, exercises, sessions, sets
}

func TestExerciseProgressUnknownExercise(t *testing.T) {
	svc, _, _, _, _ := newProgressFixture(t)

	if _, err := svc.ExerciseProgress(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("got %v, want ErrExerciseNotFound", err)
	}
}

func TestExerciseProgressChartAndPersonalBest(t *testing.T) {
	svc, days, exercises, sessions, sets := newProgressFixture(t)

	day := domain.WorkoutDay{Name: "Push"}
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

	// Two training days: 80s at the rep top, then a heavier 85 at only 10
	// reps plus an 82.5 at 12.
	addSession(t, sessions, sets, day.ID, press.ID, 10, true,
		SetPerformance{Weight: 80, Reps: 12},
		SetPerformance{Weight: 80, Reps: 12})
	addSession(t, sessions, sets, day.ID, press.ID, 2, true,
		SetPerformance{Weight: 85, Reps: 10},
		SetPerformance{Weight: 82.5, Reps: 12})

	progress, err := svc.ExerciseProgress(context.Background(), press.ID)
	if err != nil {
		t.Fatalf("ExerciseProgress: %v", err)
	}

	if len(progress.CompletedSets) != 4 {
		t.Fatalf("completed sets = %d, want 4", len(progress.CompletedSets))
	}
	// Oldest first.
	if !progress.CompletedSets[0].CompletedAt.Before(*progress.CompletedSets[3].CompletedAt) {
		t.Error("completed sets not in chronological order")
	}

	// Personal best requires hitting the top of the rep range: the 85x10
	// does not qualify, the 82.5x12 does.
	if progress.PersonalBest == nil {
		t.Fatal("expected a personal best")
	}
	if progress.PersonalBest.Weight != 82.5 {
		t.Errorf("personal best = %v, want 82.5", progress.PersonalBest.Weight)
	}

	// Chart: one point per training day at that day's heaviest set.
	if len(progress.Chart) != 2 {
		t.Fatalf("chart points = %d, want 2", len(progress.Chart))
	}
	if progress.Chart[0].Weight != 80 || progress.Chart[1].Weight != 85 {
		t.Errorf("chart = %+v, want heaviest per day [80 85]", progress.Chart)
	}
	if !progress.Chart[0].Date.Before(progress.Chart[1].Date) {
		t.Error("chart not in chronological order")
	}
}

func TestSessionDetailOrdersSetsForDisplay(t *testing.T) {
	svc, days, exercises, sessions, sets := newProgressFixture(t)

	day := domain.WorkoutDay{Name: "Push"}
	if _, err := days.Create(context.Background(), &day); err != nil {
		t.Fatalf("create day: %v", err)
	}
	first := domain.Exercise{WorkoutDayID: day.ID, Name: "Chest Press Machine", TargetSets: 2, TargetRepsMin: 10, TargetRepsMax: 12, SortOrder: 0}
	second := domain.Exercise{WorkoutDayID: day.ID, Name: "Pec Deck / Machine Fly", TargetSets: 2, TargetRepsMin: 10, TargetRepsMax: 12, SortOrder: 1}
	for _, exercise := range []*domain.Exercise{&first, &second} {
		if _, err := exercises.Create(context.Background(), exercise); err != nil {
			t.Fatalf("create exercise: %v", err)
		}
	}

	session := domain.WorkoutSession{WorkoutDayID: day.ID, Date: time.Now(), IsCompleted: true}
	if _, err := sessions.Create(context.Background(), &session); err != nil {
		t.Fatalf("create session: %v", err)
	}
	batch := []domain.ExerciseSet{
		{ID: primitive.NewObjectID(), ExerciseID: second.ID, SessionID: session.ID, SetNumber: 1, Weight: 40, Reps: 12},
		{ID: primitive.NewObjectID(), ExerciseID: first.ID, SessionID: session.ID, SetNumber: 2, Weight: 50, Reps: 12},
		{ID: primitive.NewObjectID(), ExerciseID: first.ID, SessionID: session.ID, SetNumber: 1, Weight: 50, Reps: 12},
	}
	if _, err := sets.CreateMany(context.Background(), batch); err != nil {
		t.Fatalf("create sets: %v", err)
	}

	detail, err := svc.SessionDetail(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("SessionDetail: %v", err)
	}
	if detail.Day == nil || detail.Day.ID != day.ID {
		t.Fatal("day not resolved")
	}
	if len(detail.Sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(detail.Sets))
	}
	// Press set 1, press set 2, then the fly set.
	if detail.Sets[0].ExerciseID != first.ID || detail.Sets[0].SetNumber != 1 {
		t.Errorf("sets[0] = %+v", detail.Sets[0])
	}
	if detail.Sets[1].ExerciseID != first.ID || detail.Sets[1].SetNumber != 2 {
		t.Errorf("sets[1] = %+v", detail.Sets[1])
	}
	if detail.Sets[2].ExerciseID != second.ID {
		t.Errorf("sets[2] = %+v", detail.Sets[2])
	}
}

func TestSessionDetailUnknownSession(t *testing.T) {
	svc, _, _, _, _ := newProgressFixture(t)

	if _, err := svc.SessionDetail(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}

func TestSessionsByMonth(t *testing.T) {
	svc, days, _, sessions, _ := newProgressFixture(t)

	day := domain.WorkoutDay{Name: "Push"}
	if _, err := days.Create(context.Background(), &day); err != nil {
		t.Fatalf("create day: %v", err)
	}

	dates := []time.Time{
		time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 30, 9, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		session := domain.WorkoutSession{WorkoutDayID: day.ID, Date: date, IsCompleted: true}
		if _, err := sessions.Create(context.Background(), &session); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	groups, err := svc.SessionsByMonth(context.Background())
	if err != nil {
		t.Fatalf("SessionsByMonth: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Month != "January 2026" || len(groups[0].Sessions) != 2 {
		t.Errorf("groups[0] = %s with %d sessions", groups[0].Month, len(groups[0].Sessions))
	}
	if groups[1].Month != "December 2025" || len(groups[1].Sessions) != 1 {
		t.Errorf("groups[1] = %s with %d sessions", groups[1].Month, len(groups[1].Sessions))
	}
	// Newest first inside each bucket.
	if !groups[0].Sessions[0].Date.After(groups[0].Sessions[1].Date) {
		t.Error("sessions within a month not newest-first")
	}
}
