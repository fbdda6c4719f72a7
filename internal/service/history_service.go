package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// historyLookupLimit bounds how far back the history scan goes. Five
// sessions is enough to bridge a skipped rotation without surfacing
// stale numbers.
const historyLookupLimit = 5

// SetPerformance is one remembered set: what was lifted and for how many
// reps.
type SetPerformance struct {
	Weight float64
	Reps   int
}

// HistoryService answers "what did the user do last time" for an exercise,
// seeding new sessions so progressive overload does not require re-entry.
type HistoryService interface {
	// LastPerformance returns the most recent fully-logged performance for
	// each set position of the exercise, keyed by zero-based set index.
	// The map is empty when no qualifying history exists.
	LastPerformance(ctx context.Context, dayID, exerciseID primitive.ObjectID) (map[int]SetPerformance, error)

	// LastCompletedSets returns the completed sets of the most recent
	// completed same-day session that logged this exercise, ordered by set
	// number. Empty when no qualifying history exists.
	LastCompletedSets(ctx context.Context, dayID, exerciseID primitive.ObjectID) ([]domain.ExerciseSet, error)
}

type historyService struct {
	sessionRepo repository.SessionRepository
	setRepo     repository.ExerciseSetRepository
}

// NewHistoryService creates a new history lookup service.
func NewHistoryService(sessionRepo repository.SessionRepository, setRepo repository.ExerciseSetRepository) HistoryService {
	return &historyService{sessionRepo: sessionRepo, setRepo: setRepo}
}

func (s *historyService) LastPerformance(ctx context.Context, dayID, exerciseID primitive.ObjectID) (map[int]SetPerformance, error) {
	sets, err := s.LastCompletedSets(ctx, dayID, exerciseID)
	if err != nil {
		return nil, err
	}

	result := make(map[int]SetPerformance, len(sets))
	for _, set := range sets {
		result[set.SetNumber-1] = SetPerformance{Weight: set.Weight, Reps: set.Reps}
	}
	return result, nil
}

// LastCompletedSets scans the most recent completed sessions, newest first.
// The first same-day session with completed sets for the exercise wins
// outright: a session is one coherent performance, and merging numbers
// across sessions would misrepresent capability, so the scan never
// continues past a partial match.
func (s *historyService) LastCompletedSets(ctx context.Context, dayID, exerciseID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	sessions, err := s.sessionRepo.GetCompleted(ctx, historyLookupLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch completed sessions: %w", err)
	}

	for _, session := range sessions {
		if session.WorkoutDayID != dayID {
			continue
		}

		sessionSets, err := s.setRepo.GetBySessionID(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch sets for session %s: %w", session.ID.Hex(), err)
		}

		var matched []domain.ExerciseSet
		for _, set := range sessionSets {
			if set.ExerciseID == exerciseID && set.IsCompleted {
				matched = append(matched, set)
			}
		}
		if len(matched) > 0 {
			sort.Slice(matched, func(i, j int) bool {
				return matched[i].SetNumber < matched[j].SetNumber
			})
			return matched, nil
		}
	}
	return nil, nil
}
