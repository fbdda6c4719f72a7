package repository

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutDayRepository provides access to the workout-day catalog.
// Deleting a day cascades to its exercises and their sets.
type WorkoutDayRepository interface {
	Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error)
	GetAll(ctx context.Context) ([]domain.WorkoutDay, error) // Sorted by sortOrder
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository provides access to exercise prescriptions.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.Exercise, error) // Sorted by sortOrder
	GetAll(ctx context.Context) ([]domain.Exercise, error)                               // Sorted by sortOrder
}

// SessionRepository provides access to workout sessions.
// Deleting a session cascades to its sets.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// GetCompleted returns completed sessions sorted by date descending,
	// at most limit (<= 0 means no limit).
	GetCompleted(ctx context.Context, limit int64) ([]domain.WorkoutSession, error)
	// GetLatestIncomplete returns the most recent session that was never
	// finalized, or ErrNotFound.
	GetLatestIncomplete(ctx context.Context) (*domain.WorkoutSession, error)
}

// ExerciseSetRepository provides access to logged sets.
type ExerciseSetRepository interface {
	CreateMany(ctx context.Context, sets []domain.ExerciseSet) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error)
	GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.ExerciseSet, error) // Sorted by setNumber
	Update(ctx context.Context, set *domain.ExerciseSet) error
	DeleteBySessionAndExercise(ctx context.Context, sessionID, exerciseID primitive.ObjectID) error
	DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error
}

// SettingsRepository stores the single user-settings document.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error) // ErrNotFound when never saved
	Save(ctx context.Context, settings *domain.Settings) error
}
