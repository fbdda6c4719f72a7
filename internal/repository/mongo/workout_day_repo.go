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

const workoutDayCollectionName = "workout_days"

// mongoWorkoutDayRepository implements repository.WorkoutDayRepository.
type mongoWorkoutDayRepository struct {
	db *mongo.Database
}

// NewMongoWorkoutDayRepository creates a new WorkoutDay repository.
// It keeps the whole database handle because deleting a day cascades into
// the exercises and exercise_sets collections.
func NewMongoWorkoutDayRepository(db *mongo.Database) repository.WorkoutDayRepository {
	return &mongoWorkoutDayRepository{db: db}
}

func (r *mongoWorkoutDayRepository) collection() *mongo.Collection {
	return r.db.Collection(workoutDayCollectionName)
}

// Create inserts a new workout day.
func (r *mongoWorkoutDayRepository) Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	if day.Name == "" {
		return primitive.NilObjectID, errors.New("workout day requires a name")
	}
	day.ID = primitive.NewObjectID()

	result, err := r.collection().InsertOne(ctx, day)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout day ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout day.
func (r *mongoWorkoutDayRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	var day domain.WorkoutDay
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetAll retrieves every workout day in rotation order.
func (r *mongoWorkoutDayRepository) GetAll(ctx context.Context) ([]domain.WorkoutDay, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}})

	cursor, err := r.collection().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []domain.WorkoutDay
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// Count returns the number of workout days (used by first-run seeding).
func (r *mongoWorkoutDayRepository) Count(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}

// Delete removes a workout day and cascades into its exercises and their
// logged sets. Mongo has no referential actions, so the cascade is issued
// here, children first.
func (r *mongoWorkoutDayRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	exercises := r.db.Collection(exerciseCollectionName)

	cursor, err := exercises.Find(ctx, bson.M{"workoutDayId": id})
	if err != nil {
		return err
	}
	var owned []domain.Exercise
	if err = cursor.All(ctx, &owned); err != nil {
		return err
	}

	if len(owned) > 0 {
		ids := make([]primitive.ObjectID, 0, len(owned))
		for _, ex := range owned {
			ids = append(ids, ex.ID)
		}
		if _, err := r.db.Collection(exerciseSetCollectionName).DeleteMany(ctx, bson.M{"exerciseId": bson.M{"$in": ids}}); err != nil {
			return err
		}
		if _, err := exercises.DeleteMany(ctx, bson.M{"workoutDayId": id}); err != nil {
			return err
		}
	}

	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutDayIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The rotation is addressed by position.
			Keys:    bson.D{{Key: "sortOrder", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
