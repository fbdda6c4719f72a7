package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSession is one concrete, dated performance of a WorkoutDay.
// It is created when a workout starts and is either finalized
// (IsCompleted = true) or deleted entirely on cancel. A session left
// with IsCompleted = false is the recoverable "incomplete session" the
// dashboard offers to resume or discard.
type WorkoutSession struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutDayID primitive.ObjectID `bson:"workoutDayId" json:"workoutDayId"`
	Date         time.Time          `bson:"date" json:"date"`
	IsCompleted  bool               `bson:"isCompleted" json:"isCompleted"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	// Sets are owned by the session (cascade delete), linked back via
	// ExerciseSet.SessionID.
}

// SortSetsForDisplay orders a session's sets by exercise position within
// the day, then by set number. exerciseOrder maps exercise ID to the
// exercise's SortOrder; unknown exercises sort first.
func SortSetsForDisplay(sets []ExerciseSet, exerciseOrder map[primitive.ObjectID]int) {
	sort.SliceStable(sets, func(i, j int) bool {
		oi := exerciseOrder[sets[i].ExerciseID]
		oj := exerciseOrder[sets[j].ExerciseID]
		if oi != oj {
			return oi < oj
		}
		return sets[i].SetNumber < sets[j].SetNumber
	})
}
