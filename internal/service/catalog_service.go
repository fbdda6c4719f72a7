package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseView is an exercise decorated for display: rendered name and rep
// range plus a short-lived URL for its equipment image.
type ExerciseView struct {
	domain.Exercise
	DisplayName     string
	TargetRepsRange string
	ImageURL        string
}

// WorkoutDayView is a day with its ordered exercise prescriptions.
type WorkoutDayView struct {
	domain.WorkoutDay
	Exercises []ExerciseView
}

// CatalogService reads the static workout catalog. The engine never writes
// through here; the catalog only changes via seeding.
type CatalogService interface {
	GetWorkoutDays(ctx context.Context) ([]WorkoutDayView, error)
	GetWorkoutDay(ctx context.Context, dayID primitive.ObjectID) (*WorkoutDayView, error)
}

type catalogService struct {
	dayRepo      repository.WorkoutDayRepository
	exerciseRepo repository.ExerciseRepository
	images       storage.ImageStorage // Optional; nil disables image URLs
}

// NewCatalogService creates a new catalog read service.
func NewCatalogService(dayRepo repository.WorkoutDayRepository, exerciseRepo repository.ExerciseRepository, images storage.ImageStorage) CatalogService {
	return &catalogService{dayRepo: dayRepo, exerciseRepo: exerciseRepo, images: images}
}

// GetWorkoutDays returns the full rotation in order.
func (s *catalogService) GetWorkoutDays(ctx context.Context) ([]WorkoutDayView, error) {
	days, err := s.dayRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]WorkoutDayView, 0, len(days))
	for _, day := range days {
		view, err := s.buildDayView(ctx, day)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetWorkoutDay returns one day with its exercises.
func (s *catalogService) GetWorkoutDay(ctx context.Context, dayID primitive.ObjectID) (*WorkoutDayView, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutDayNotFound
		}
		return nil, err
	}
	return s.buildDayView(ctx, *day)
}

func (s *catalogService) buildDayView(ctx context.Context, day domain.WorkoutDay) (*WorkoutDayView, error) {
	exercises, err := s.exerciseRepo.GetByDayID(ctx, day.ID)
	if err != nil {
		return nil, err
	}

	view := &WorkoutDayView{WorkoutDay: day, Exercises: make([]ExerciseView, 0, len(exercises))}
	for _, exercise := range exercises {
		ev := ExerciseView{
			Exercise:        exercise,
			DisplayName:     exercise.DisplayName(),
			TargetRepsRange: exercise.TargetRepsRange(),
		}
		if s.images != nil && exercise.ImageName != "" {
			url, err := s.images.GenerateImageURL(ctx, exercise.ImageName, storage.DefaultPresignedURLExpiry)
			if err != nil {
				// The catalog still renders without the photo.
				log.Printf("WARN: Failed to presign image %q: %v", exercise.ImageName, err)
			} else {
				ev.ImageURL = url
			}
		}
		view.Exercises = append(view.Exercises, ev)
	}
	return view, nil
}
