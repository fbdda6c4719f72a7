// Package seed installs the built-in push/pull/legs catalog on first run.
package seed

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"fmt"
)

// dayTemplate bundles a day with its exercise prescriptions for insertion.
type dayTemplate struct {
	day       domain.WorkoutDay
	exercises []domain.Exercise
}

// SeedIfNeeded inserts the default three-day rotation when the catalog is
// empty. Idempotent: any existing day means a prior run (or the user)
// already populated it.
func SeedIfNeeded(ctx context.Context, dayRepo repository.WorkoutDayRepository, exerciseRepo repository.ExerciseRepository) error {
	count, err := dayRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count workout days: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, template := range defaultRotation() {
		dayID, err := dayRepo.Create(ctx, &template.day)
		if err != nil {
			return fmt.Errorf("seed day %q: %w", template.day.Name, err)
		}
		for i := range template.exercises {
			template.exercises[i].WorkoutDayID = dayID
			if _, err := exerciseRepo.Create(ctx, &template.exercises[i]); err != nil {
				return fmt.Errorf("seed exercise %q: %w", template.exercises[i].Name, err)
			}
		}
	}
	return nil
}

func defaultRotation() []dayTemplate {
	return []dayTemplate{pushDay(), pullDay(), legsDay()}
}

// exercise builds a prescription with the default 3x10-12 targets.
func exercise(name, alternative string, sortOrder int, icon string, defaultWeight float64, imageName string) domain.Exercise {
	return domain.Exercise{
		Name:            name,
		AlternativeName: alternative,
		TargetSets:      domain.DefaultTargetSets,
		TargetRepsMin:   domain.DefaultTargetRepsMin,
		TargetRepsMax:   domain.DefaultTargetRepsMax,
		SortOrder:       sortOrder,
		Icon:            icon,
		DefaultWeight:   defaultWeight,
		ImageName:       imageName,
	}
}

func pushDay() dayTemplate {
	return dayTemplate{
		day: domain.WorkoutDay{
			Name:      "Push",
			Subtitle:  "Chest, Shoulders, Triceps",
			DayLabel:  "Day A",
			SortOrder: 0,
		},
		exercises: []domain.Exercise{
			exercise("Chest Press Machine", "", 0, "strength-traditional", 50, "equipment-chest-press"),
			exercise("Pec Deck / Machine Fly", "", 1, "arms-open", 40, "equipment-pec-deck"),
			exercise("Shoulder Press Machine", "", 2, "strength-traditional", 30, "equipment-shoulder-press"),
			exercise("Lateral Raise Machine", "or Cable Lateral Raises", 3, "arms-open", 20, "equipment-lateral-raise"),
			exercise("Tricep Pushdown", "", 4, "strength-functional", 25, "equipment-tricep-pushdown"),
			exercise("Assisted Dip Machine", "if available", 5, "strength-traditional", 30, "equipment-assisted-dip"),
		},
	}
}

func pullDay() dayTemplate {
	return dayTemplate{
		day: domain.WorkoutDay{
			Name:      "Pull",
			Subtitle:  "Back, Biceps, Rear Delts",
			DayLabel:  "Day B",
			SortOrder: 1,
		},
		exercises: []domain.Exercise{
			exercise("Lat Pulldown", "", 0, "strength-traditional", 50, "equipment-lat-pulldown"),
			exercise("Seated Cable Row", "", 1, "rowing", 40, "equipment-seated-cable-row"),
			exercise("Rear Delt Fly Machine", "Reverse Pec Deck", 2, "arms-open", 30, "equipment-rear-delt-fly"),
			exercise("Cable Face Pulls", "", 3, "strength-functional", 15, "equipment-face-pulls"),
			exercise("Bicep Curl Machine", "or Cable Curls", 4, "strength-functional", 25, "equipment-bicep-curl"),
			exercise("Assisted Pull-Up Machine", "if available", 5, "strength-traditional", 30, "equipment-assisted-pullup"),
		},
	}
}

func legsDay() dayTemplate {
	return dayTemplate{
		day: domain.WorkoutDay{
			Name:      "Legs & Core",
			Subtitle:  "Quads, Hamstrings, Glutes, Core",
			DayLabel:  "Day C",
			SortOrder: 2,
		},
		exercises: []domain.Exercise{
			exercise("Leg Press", "", 0, "strength-traditional", 90, "equipment-leg-press"),
			exercise("Leg Extension", "", 1, "walk", 40, "equipment-leg-extension"),
			exercise("Leg Curl", "", 2, "walk", 40, "equipment-leg-curl"),
			exercise("Hip Adductor Machine", "", 3, "flexibility", 40, "equipment-hip-adductor"),
			exercise("Hip Abductor Machine", "", 4, "flexibility", 40, "equipment-hip-abductor"),
			exercise("Calf Raise Machine", "", 5, "walk", 50, "equipment-calf-raise"),
			exercise("Cable Crunch", "or Ab Machine", 6, "core", 30, "equipment-cable-crunch"),
		},
	}
}
