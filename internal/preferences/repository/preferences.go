package repository

import (
	"context"
	"errors"
	"fmt"
	prefserrors "spacebook/internal/preferences/errors"
	"spacebook/pkg/config"
	"spacebook/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Preferences"
)

type PreferencesRepository interface {
	Find(ctx context.Context, userID string) (*model.Preferences, error)
	Save(ctx context.Context, userID string, prefs model.Preferences) error
}

type mongoPreferencesRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type preferencesDocument struct {
	UserID    string    `bson:"user_id"`
	Currency  string    `bson:"currency"`
	Language  string    `bson:"language"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongoPreferencesRepository(cfg *config.Config) PreferencesRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPreferencesRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPreferencesRepository) Find(ctx context.Context, userID string) (*model.Preferences, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc preferencesDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, prefserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}

	return &model.Preferences{Currency: doc.Currency, Language: doc.Language}, nil
}

func (r *mongoPreferencesRepository) Save(ctx context.Context, userID string, prefs model.Preferences) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"currency":   prefs.Currency,
			"language":   prefs.Language,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, opts); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
