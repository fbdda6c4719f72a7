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

const sessionCollectionName = "workout_sessions"

// mongoSessionRepository implements repository.SessionRepository.
type mongoSessionRepository struct {
	db *mongo.Database
}

// NewMongoSessionRepository creates a new WorkoutSession repository.
// It keeps the database handle because deleting a session cascades into
// the exercise_sets collection.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{db: db}
}

func (r *mongoSessionRepository) collection() *mongo.Collection {
	return r.db.Collection(sessionCollectionName)
}

// Create inserts a new session.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.WorkoutDayID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session requires workoutDayId")
	}
	if session.Date.IsZero() {
		return primitive.NilObjectID, errors.New("session requires a date")
	}
	if session.ID == primitive.NilObjectID {
		session.ID = primitive.NewObjectID()
	}

	result, err := r.collection().InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Update rewrites the session's mutable fields.
func (r *mongoSessionRepository) Update(ctx context.Context, session *domain.WorkoutSession) error {
	if session.ID == primitive.NilObjectID {
		return errors.New("session ID is required for update")
	}

	updateDoc := bson.M{
		"$set": bson.M{
			"isCompleted": session.IsCompleted,
			"notes":       session.Notes,
			"date":        session.Date,
		},
	}
	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": session.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a session and, via cascade, all of its sets. Deleting an
// already-deleted session is a no-op so cancel stays idempotent.
func (r *mongoSessionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.db.Collection(exerciseSetCollectionName).DeleteMany(ctx, bson.M{"sessionId": id}); err != nil {
		return err
	}
	_, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// GetCompleted returns completed sessions, newest first, up to limit.
func (r *mongoSessionRepository) GetCompleted(ctx context.Context, limit int64) ([]domain.WorkoutSession, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection().Find(ctx, bson.M{"isCompleted": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.WorkoutSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetLatestIncomplete returns the most recent never-finalized session.
func (r *mongoSessionRepository) GetLatestIncomplete(ctx context.Context) (*domain.WorkoutSession, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var session domain.WorkoutSession
	err := r.collection().FindOne(ctx, bson.M{"isCompleted": false}, findOptions).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// History and dashboard queries: completed sessions by recency.
			Keys:    bson.D{{Key: "isCompleted", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "workoutDayId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
