package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsCollectionName = "settings"

// The tracker is single-user, so settings live in one well-known document.
const settingsDocID = "user"

// mongoSettingsRepository implements repository.SettingsRepository.
type mongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates a new Settings repository.
func NewMongoSettingsRepository(db *mongo.Database) repository.SettingsRepository {
	return &mongoSettingsRepository{
		collection: db.Collection(settingsCollectionName),
	}
}

type settingsDoc struct {
	ID       string          `bson:"_id"`
	Settings domain.Settings `bson:"settings"`
}

// Get returns the stored settings, or ErrNotFound when nothing was ever
// saved (callers fall back to configured defaults).
func (r *mongoSettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var doc settingsDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc.Settings, nil
}

// Save upserts the settings document.
func (r *mongoSettingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	doc := settingsDoc{ID: settingsDocID, Settings: *settings}
	updateOptions := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, updateOptions)
	return err
}
