package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrSessionNotFound  = errors.New("session not found")
)

// ChartPoint is one point of an exercise's weight-over-time chart: the
// heaviest completed set of each training day.
type ChartPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

// ExerciseProgress is the full history view for one exercise.
type ExerciseProgress struct {
	Exercise      domain.Exercise      `json:"exercise"`
	CompletedSets []domain.ExerciseSet `json:"completedSets"`
	PersonalBest  *domain.ExerciseSet  `json:"personalBest,omitempty"`
	Chart         []ChartPoint         `json:"chart"`
}

// SessionDetail is a finished session with its sets in display order
// (exercise position within the day, then set number).
type SessionDetail struct {
	Session   domain.WorkoutSession `json:"session"`
	Day       *domain.WorkoutDay    `json:"day,omitempty"`
	Sets      []domain.ExerciseSet  `json:"sets"`
	Exercises []domain.Exercise     `json:"exercises"`
}

// MonthGroup buckets completed sessions by calendar month, newest first.
type MonthGroup struct {
	Month    string                  `json:"month"` // e.g. "January 2026"
	Sessions []domain.WorkoutSession `json:"sessions"`
}

// ProgressService serves the charts/history screens. Pure reads.
type ProgressService interface {
	ExerciseProgress(ctx context.Context, exerciseID primitive.ObjectID) (*ExerciseProgress, error)
	SessionDetail(ctx context.Context, sessionID primitive.ObjectID) (*SessionDetail, error)
	SessionsByMonth(ctx context.Context) ([]MonthGroup, error)
}

type progressService struct {
	dayRepo      repository.WorkoutDayRepository
	exerciseRepo repository.ExerciseRepository
	sessionRepo  repository.SessionRepository
	setRepo      repository.ExerciseSetRepository
}

// NewProgressService creates a new progress read service.
func NewProgressService(
	dayRepo repository.WorkoutDayRepository,
	exerciseRepo repository.ExerciseRepository,
	sessionRepo repository.SessionRepository,
	setRepo repository.ExerciseSetRepository,
) ProgressService {
	return &progressService{
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
		sessionRepo:  sessionRepo,
		setRepo:      setRepo,
	}
}

// ExerciseProgress collects the exercise's completed sets across all
// completed sessions, oldest first, and derives the personal best and
// chart from them. Only sets whose session was finalized count: work from
// a cancelled or still-open session is not history.
func (s *progressService) ExerciseProgress(ctx context.Context, exerciseID primitive.ObjectID) (*ExerciseProgress, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	sessions, err := s.sessionRepo.GetCompleted(ctx, 0)
	if err != nil {
		return nil, err
	}
	// Oldest first for the history list and chart.
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Date.Before(sessions[j].Date) })

	progress := &ExerciseProgress{Exercise: *exercise}
	for _, session := range sessions {
		sessionSets, err := s.setRepo.GetBySessionID(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch sets for session %s: %w", session.ID.Hex(), err)
		}

		var dayMax float64
		for _, set := range sessionSets {
			if set.ExerciseID != exerciseID || !set.IsCompleted {
				continue
			}
			progress.CompletedSets = append(progress.CompletedSets, set)
			if set.Weight > dayMax {
				dayMax = set.Weight
			}

			// Personal best: the heaviest set performed at the top of the
			// rep range.
			if set.Reps >= exercise.TargetRepsMax {
				if progress.PersonalBest == nil || set.Weight > progress.PersonalBest.Weight {
					best := set
					progress.PersonalBest = &best
				}
			}
		}
		if dayMax > 0 {
			progress.Chart = append(progress.Chart, ChartPoint{
				Date:   startOfDay(session.Date),
				Weight: dayMax,
			})
		}
	}
	return progress, nil
}

// SessionDetail loads one session with its sets in display order.
func (s *progressService) SessionDetail(ctx context.Context, sessionID primitive.ObjectID) (*SessionDetail, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	sets, err := s.setRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.GetByDayID(ctx, session.WorkoutDayID)
	if err != nil {
		return nil, err
	}

	exerciseOrder := make(map[primitive.ObjectID]int, len(exercises))
	for _, exercise := range exercises {
		exerciseOrder[exercise.ID] = exercise.SortOrder
	}
	domain.SortSetsForDisplay(sets, exerciseOrder)

	detail := &SessionDetail{Session: *session, Sets: sets, Exercises: exercises}
	if day, err := s.dayRepo.GetByID(ctx, session.WorkoutDayID); err == nil {
		detail.Day = day
	}
	return detail, nil
}

// SessionsByMonth groups completed sessions into month buckets, newest
// bucket and newest session first.
func (s *progressService) SessionsByMonth(ctx context.Context) ([]MonthGroup, error) {
	sessions, err := s.sessionRepo.GetCompleted(ctx, 0)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.WorkoutSession)
	var order []string
	for _, session := range sessions { // Already newest first
		month := session.Date.Format("January 2006")
		if _, ok := grouped[month]; !ok {
			order = append(order, month)
		}
		grouped[month] = append(grouped[month], session)
	}

	groups := make([]MonthGroup, 0, len(order))
	for _, month := range order {
		groups = append(groups, MonthGroup{Month: month, Sessions: grouped[month]})
	}
	return groups, nil
}
