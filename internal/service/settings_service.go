package service

import (
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
)

// --- Error Definitions ---
var (
	ErrSettingsInvalid = errors.New("settings validation failed")
)

// SettingsService exposes the single user's tunables. Reads fall back to
// the configured defaults when nothing was ever saved; the engine reads
// values at well-defined moments (session start, suggestion evaluation)
// rather than subscribing to changes.
type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) (domain.Settings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     domain.Settings
}

// NewSettingsService creates a new settings service. The workout config
// section supplies the defaults used until the user saves their own.
func NewSettingsService(settingsRepo repository.SettingsRepository, cfg config.WorkoutConfig) SettingsService {
	defaults := domain.Settings{
		RestTimerSeconds: cfg.RestTimerSeconds,
		WeightIncrement:  cfg.WeightIncrement,
	}
	if defaults.RestTimerSeconds <= 0 {
		defaults.RestTimerSeconds = domain.DefaultRestTimerSeconds
	}
	if defaults.WeightIncrement <= 0 {
		defaults.WeightIncrement = domain.DefaultWeightIncrement
	}
	return &settingsService{settingsRepo: settingsRepo, defaults: defaults}
}

// Get returns the stored settings, or the defaults when none exist.
func (s *settingsService) Get(ctx context.Context) (domain.Settings, error) {
	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.defaults, nil
		}
		return domain.Settings{}, err
	}
	return *stored, nil
}

// Update validates and persists new settings.
func (s *settingsService) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if settings.RestTimerSeconds <= 0 {
		return domain.Settings{}, ErrSettingsInvalid
	}
	if settings.WeightIncrement <= 0 {
		return domain.Settings{}, ErrSettingsInvalid
	}
	if err := s.settingsRepo.Save(ctx, &settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
