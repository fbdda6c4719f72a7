package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutDay is one named template in the fixed training rotation
// (e.g., "Push" / "Pull" / "Legs & Core"). SortOrder defines its position
// in the rotation: 0, 1, 2, ...
type WorkoutDay struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`           // e.g., "Push"
	Subtitle  string             `bson:"subtitle" json:"subtitle"`   // e.g., "Chest, Shoulders, Triceps"
	DayLabel  string             `bson:"dayLabel" json:"dayLabel"`   // e.g., "Day A"
	SortOrder int                `bson:"sortOrder" json:"sortOrder"` // Rotation position
	// Exercises are owned by the day (cascade delete) but live in their own
	// collection, linked back via Exercise.WorkoutDayID. Sessions reference
	// the day the same way and are NOT owned by it.
}

// NextSortOrder returns the rotation position that follows the given one.
// A nil last position (no completed session yet) starts the rotation at 0.
func NextSortOrder(last *int, dayCount int) int {
	if dayCount <= 0 || last == nil {
		return 0
	}
	return (*last + 1) % dayCount
}
