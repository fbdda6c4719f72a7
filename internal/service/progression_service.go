package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
)

// ProgressionService decides when to recommend a heavier working weight:
// only after the user hit the top of the rep range on every one of the
// exercise's target sets in their most recent qualifying session.
type ProgressionService interface {
	// SuggestedWeight returns the recommended next working weight for the
	// exercise, or nil when no increase is warranted (including when there
	// is no prior session at all).
	SuggestedWeight(ctx context.Context, exercise *domain.Exercise) (*float64, error)
}

type progressionService struct {
	history  HistoryService
	settings SettingsService
}

// NewProgressionService creates a new progression advisor.
func NewProgressionService(history HistoryService, settings SettingsService) ProgressionService {
	return &progressionService{history: history, settings: settings}
}

func (s *progressionService) SuggestedWeight(ctx context.Context, exercise *domain.Exercise) (*float64, error) {
	lastSets, err := s.history.LastCompletedSets(ctx, exercise.WorkoutDayID, exercise.ID)
	if err != nil {
		return nil, err
	}

	// A partial session never triggers a suggestion: every target set must
	// have been completed at (or above) the top of the rep range.
	if len(lastSets) != exercise.TargetSets {
		return nil, nil
	}
	for _, set := range lastSets {
		if set.Reps < exercise.TargetRepsMax {
			return nil, nil
		}
	}

	maxWeight := lastSets[0].Weight
	for _, set := range lastSets[1:] {
		if set.Weight > maxWeight {
			maxWeight = set.Weight
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	suggested := maxWeight + settings.WeightIncrement
	return &suggested, nil
}
