package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseSet is one logged attempt (weight x reps) at an exercise within a
// session. Sets are created in a batch when the session starts (one per
// target set per exercise, numbered 1..targetSets) and never individually
// afterwards. CompletedAt is set exactly when IsCompleted is true.
type ExerciseSet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	SessionID   primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	SetNumber   int                `bson:"setNumber" json:"setNumber"` // 1-based, unique per (session, exercise)
	Weight      float64            `bson:"weight" json:"weight"`
	Reps        int                `bson:"reps" json:"reps"`
	IsCompleted bool               `bson:"isCompleted" json:"isCompleted"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// Validate enforces the per-set invariants.
func (s *ExerciseSet) Validate() error {
	if s.SetNumber < 1 {
		return fmt.Errorf("set number must be >= 1, got %d", s.SetNumber)
	}
	if s.Weight < 0 {
		return fmt.Errorf("set weight must be >= 0, got %v", s.Weight)
	}
	if s.Reps < 0 {
		return fmt.Errorf("set reps must be >= 0, got %d", s.Reps)
	}
	if s.IsCompleted != (s.CompletedAt != nil) {
		return fmt.Errorf("completedAt must be set exactly when the set is completed")
	}
	return nil
}
