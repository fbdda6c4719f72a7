package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseSetCollectionName = "exercise_sets"

// mongoExerciseSetRepository implements repository.ExerciseSetRepository.
type mongoExerciseSetRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseSetRepository creates a new ExerciseSet repository.
func NewMongoExerciseSetRepository(db *mongo.Database) repository.ExerciseSetRepository {
	return &mongoExerciseSetRepository{
		collection: db.Collection(exerciseSetCollectionName),
	}
}

// CreateMany inserts the seeded batch of sets for a freshly started session.
func (r *mongoExerciseSetRepository) CreateMany(ctx context.Context, sets []domain.ExerciseSet) ([]primitive.ObjectID, error) {
	if len(sets) == 0 {
		return nil, nil
	}

	docs := make([]interface{}, 0, len(sets))
	ids := make([]primitive.ObjectID, 0, len(sets))
	for i := range sets {
		if sets[i].ExerciseID == primitive.NilObjectID || sets[i].SessionID == primitive.NilObjectID {
			return nil, errors.New("exercise set requires exerciseId and sessionId")
		}
		if err := sets[i].Validate(); err != nil {
			return nil, err
		}
		if sets[i].ID == primitive.NilObjectID {
			sets[i].ID = primitive.NewObjectID()
		}
		ids = append(ids, sets[i].ID)
		docs = append(docs, sets[i])
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetByID retrieves a single set.
func (r *mongoExerciseSetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error) {
	var set domain.ExerciseSet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &set, nil
}

// GetBySessionID retrieves every set logged under a session, by set number.
func (r *mongoExerciseSetRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []domain.ExerciseSet
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// Update rewrites a set's mutable fields.
func (r *mongoExerciseSetRepository) Update(ctx context.Context, set *domain.ExerciseSet) error {
	if set.ID == primitive.NilObjectID {
		return errors.New("exercise set ID is required for update")
	}
	if err := set.Validate(); err != nil {
		return err
	}

	updateDoc := bson.M{
		"$set": bson.M{
			"weight":      set.Weight,
			"reps":        set.Reps,
			"isCompleted": set.IsCompleted,
			"completedAt": set.CompletedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": set.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteBySessionAndExercise purges one exercise's sets from a session
// (finishing a workout discards sets of skipped exercises).
func (r *mongoExerciseSetRepository) DeleteBySessionAndExercise(ctx context.Context, sessionID, exerciseID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID, "exerciseId": exerciseID})
	return err
}

// DeleteBySessionID purges every set belonging to a session.
func (r *mongoExerciseSetRepository) DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}

// EnsureExerciseSetIndexes creates necessary indexes. Call during startup.
func EnsureExerciseSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Set numbers are unique within (session, exercise).
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Progress charts scan a single exercise's history.
			Keys:    bson.D{{Key: "exerciseId", Value: 1}, {Key: "isCompleted", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
