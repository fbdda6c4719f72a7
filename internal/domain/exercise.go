package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default targets applied by the seed catalog when an exercise does not
// specify its own.
const (
	DefaultTargetSets    = 3
	DefaultTargetRepsMin = 10
	DefaultTargetRepsMax = 12
)

// Exercise is one machine/movement prescription inside a WorkoutDay:
// how many sets to perform and the rep range to aim for. Display metadata
// (icon, equipment image) is carried for the clients; the engine never
// reads it.
type Exercise struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutDayID    primitive.ObjectID `bson:"workoutDayId" json:"workoutDayId"` // Owning day
	Name            string             `bson:"name" json:"name"`
	AlternativeName string             `bson:"alternativeName,omitempty" json:"alternativeName,omitempty"` // Display-only alternate, e.g. "or Cable Curls"
	TargetSets      int                `bson:"targetSets" json:"targetSets"`
	TargetRepsMin   int                `bson:"targetRepsMin" json:"targetRepsMin"`
	TargetRepsMax   int                `bson:"targetRepsMax" json:"targetRepsMax"`
	SortOrder       int                `bson:"sortOrder" json:"sortOrder"` // Order within the day
	DefaultWeight   float64            `bson:"defaultWeight" json:"defaultWeight"`
	Icon            string             `bson:"icon,omitempty" json:"icon,omitempty"`
	ImageName       string             `bson:"imageName,omitempty" json:"imageName,omitempty"` // Equipment image object key (see storage)
}

// DisplayName renders the name with the alternate annotation when present,
// e.g. "Lateral Raise Machine (or Cable Lateral Raises)".
func (e *Exercise) DisplayName() string {
	if e.AlternativeName != "" {
		return fmt.Sprintf("%s (%s)", e.Name, e.AlternativeName)
	}
	return e.Name
}

// TargetRepsRange renders the rep range as "10-12".
func (e *Exercise) TargetRepsRange() string {
	return fmt.Sprintf("%d-%d", e.TargetRepsMin, e.TargetRepsMax)
}

// Validate enforces the target invariants: at least one set and a positive,
// ordered rep range.
func (e *Exercise) Validate() error {
	if e.TargetSets < 1 {
		return fmt.Errorf("exercise %q: targetSets must be >= 1, got %d", e.Name, e.TargetSets)
	}
	if e.TargetRepsMin <= 0 || e.TargetRepsMax <= 0 {
		return fmt.Errorf("exercise %q: target reps must be positive", e.Name)
	}
	if e.TargetRepsMin > e.TargetRepsMax {
		return fmt.Errorf("exercise %q: targetRepsMin %d exceeds targetRepsMax %d", e.Name, e.TargetRepsMin, e.TargetRepsMax)
	}
	return nil
}
