package repository

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "spacebook/internal/bookings/errors"
	"spacebook/pkg/config"
	"spacebook/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ViewStateCollectionName = "View_states"
)

type ViewStateRepository interface {
	Find(ctx context.Context, viewer model.Viewer) (*model.ViewState, error)
	Save(ctx context.Context, state *model.ViewState) error
	Delete(ctx context.Context, viewer model.Viewer) error
}

type mongoViewStateRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoViewStateRepository(cfg *config.Config) ViewStateRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoViewStateRepository{
		cfg:        cfg,
		collection: db.Collection(ViewStateCollectionName),
	}
}

// withTimeout never extends a deadline the caller already set.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func viewerFilter(viewer model.Viewer) bson.M {
	return bson.M{"user_id": viewer.UserID, "role": viewer.Role}
}

func (r *mongoViewStateRepository) Find(ctx context.Context, viewer model.Viewer) (*model.ViewState, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var state model.ViewState
	err := r.collection.FindOne(ctx, viewerFilter(viewer)).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrViewStateNotFound
		}
		return nil, fmt.Errorf("failed to find view state: %w", err)
	}
	return &state, nil
}

func (r *mongoViewStateRepository) Save(ctx context.Context, state *model.ViewState) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	state.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"status_filter": state.StatusFilter,
			"search_term":   state.SearchTerm,
			"sort_by":       state.SortBy,
			"sort_order":    state.SortOrder,
			"current_page":  state.CurrentPage,
			"updated_at":    state.UpdatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	filter := viewerFilter(model.Viewer{UserID: state.UserID, Role: state.Role})
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save view state: %w", err)
	}
	return nil
}

func (r *mongoViewStateRepository) Delete(ctx context.Context, viewer model.Viewer) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, viewerFilter(viewer)); err != nil {
		return fmt.Errorf("failed to delete view state: %w", err)
	}
	return nil
}
