package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutDayNotFound = errors.New("workout day not found")
	ErrNoActiveWorkout    = errors.New("no workout is in progress")
	ErrWorkoutInProgress  = errors.New("a workout is already in progress")
	// ErrUnresolvedSession means a stored incomplete session exists; the
	// caller must resume or discard it before starting a new workout.
	ErrUnresolvedSession   = errors.New("an incomplete session must be resumed or discarded first")
	ErrNoIncompleteSession = errors.New("no incomplete session to resume or discard")
)

// SessionService owns the lifecycle of the one active workout: at most one
// engine exists at a time, and a stored incomplete session must be resolved
// (resumed or discarded) before another workout may start.
type SessionService interface {
	StartWorkout(ctx context.Context, dayID primitive.ObjectID) (*ActiveWorkout, error)
	ActiveWorkout() (*ActiveWorkout, error)
	FinishWorkout(ctx context.Context) error
	// CancelWorkout deletes the active session entirely. Calling it with no
	// workout in progress is a no-op.
	CancelWorkout(ctx context.Context) error

	IncompleteSession(ctx context.Context) (*domain.WorkoutSession, error)
	ResumeIncomplete(ctx context.Context) (*ActiveWorkout, error)
	DiscardIncomplete(ctx context.Context) error
}

type sessionService struct {
	mu     sync.Mutex
	active *ActiveWorkout

	dayRepo      repository.WorkoutDayRepository
	exerciseRepo repository.ExerciseRepository
	sessionRepo  repository.SessionRepository
	setRepo      repository.ExerciseSetRepository
	history      HistoryService
	settings     SettingsService
}

// NewSessionService creates a new session lifecycle service.
func NewSessionService(
	dayRepo repository.WorkoutDayRepository,
	exerciseRepo repository.ExerciseRepository,
	sessionRepo repository.SessionRepository,
	setRepo repository.ExerciseSetRepository,
	history HistoryService,
	settings SettingsService,
) SessionService {
	return &sessionService{
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
		sessionRepo:  sessionRepo,
		setRepo:      setRepo,
		history:      history,
		settings:     settings,
	}
}

// StartWorkout builds an engine for the day and starts it. The engine is
// retained even when the start flush fails, so the workout is live in
// memory and the caller sees the persistence error.
func (s *sessionService) StartWorkout(ctx context.Context, dayID primitive.ObjectID) (*ActiveWorkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.State() == SessionActive {
		return nil, ErrWorkoutInProgress
	}

	// A stored incomplete session from an earlier run blocks a fresh start
	// until the user resumes or discards it.
	if _, err := s.sessionRepo.GetLatestIncomplete(ctx); err == nil {
		return nil, ErrUnresolvedSession
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	engine, err := s.buildEngine(ctx, dayID)
	if err != nil {
		return nil, err
	}

	s.active = engine
	if err := engine.Start(ctx); err != nil {
		return engine, err
	}
	return engine, nil
}

// ActiveWorkout returns the engine currently in progress.
func (s *sessionService) ActiveWorkout() (*ActiveWorkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.State() != SessionActive {
		return nil, ErrNoActiveWorkout
	}
	return s.active, nil
}

// FinishWorkout finalizes the active workout.
func (s *sessionService) FinishWorkout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.State() != SessionActive {
		return ErrNoActiveWorkout
	}
	if err := s.active.Finish(ctx); err != nil {
		return err
	}
	s.active = nil
	return nil
}

// CancelWorkout discards the active workout; a second call is a no-op.
func (s *sessionService) CancelWorkout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.State() != SessionActive {
		return nil
	}
	if err := s.active.Cancel(ctx); err != nil {
		return err
	}
	s.active = nil
	return nil
}

// IncompleteSession returns the stored never-finalized session, if any.
func (s *sessionService) IncompleteSession(ctx context.Context) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetLatestIncomplete(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoIncompleteSession
		}
		return nil, err
	}
	return session, nil
}

// ResumeIncomplete rebuilds an Active engine from the stored incomplete
// session and its sets. The skip state starts empty; skips never persist.
func (s *sessionService) ResumeIncomplete(ctx context.Context) (*ActiveWorkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.State() == SessionActive {
		return nil, ErrWorkoutInProgress
	}

	session, err := s.sessionRepo.GetLatestIncomplete(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoIncompleteSession
		}
		return nil, err
	}

	engine, err := s.buildEngine(ctx, session.WorkoutDayID)
	if err != nil {
		return nil, err
	}

	sets, err := s.setRepo.GetBySessionID(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("load sets for session %s: %w", session.ID.Hex(), err)
	}

	engine.resume(session, sets)
	s.active = engine
	return engine, nil
}

// DiscardIncomplete deletes the stored incomplete session and its sets.
func (s *sessionService) DiscardIncomplete(ctx context.Context) error {
	session, err := s.sessionRepo.GetLatestIncomplete(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoIncompleteSession
		}
		return err
	}
	return s.sessionRepo.Delete(ctx, session.ID)
}

func (s *sessionService) buildEngine(ctx context.Context, dayID primitive.ObjectID) (*ActiveWorkout, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutDayNotFound
		}
		return nil, err
	}

	exercises, err := s.exerciseRepo.GetByDayID(ctx, day.ID)
	if err != nil {
		return nil, fmt.Errorf("load exercises for day %q: %w", day.Name, err)
	}

	// The countdown duration is fixed for the whole session here; changing
	// the global setting mid-session does not alter it.
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	return NewActiveWorkout(*day, exercises, s.sessionRepo, s.setRepo, s.history, settings.RestTimerSeconds), nil
}
