package data

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tourdesh/tourdesh-api/internal/domain/model"
)

// StoryRepo provides document operations over the stories collection.
type StoryRepo struct {
	col          *mongo.Collection
	timeProvider TimeProvider
}

// NewStoryRepo creates a new StoryRepo.
func NewStoryRepo(db *mongo.Database) *StoryRepo {
	return &StoryRepo{col: db.Collection("stories"), timeProvider: &RealTimeProvider{}}
}

// List returns stories sorted oldest-first, optionally filtered by author.
func (r *StoryRepo) List(ctx context.Context, addedBy string) ([]model.Story, error) {
	filter := bson.D{}
	if addedBy != "" {
		filter = bson.D{{Key: "addedBy", Value: addedBy}}
	}

	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	var stories []model.Story
	if err := cur.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("decode stories: %w", err)
	}
	return stories, nil
}

// FindByID returns the story with the given object ID.
func (r *StoryRepo) FindByID(ctx context.Context, id string) (model.Story, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.Story{}, ErrInvalidID
	}
	var story model.Story
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&story)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Story{}, ErrStoryNotFound
	}
	if err != nil {
		return model.Story{}, fmt.Errorf("find story: %w", err)
	}
	return story, nil
}

// Create inserts a new story.
func (r *StoryRepo) Create(ctx context.Context, story model.Story) (model.Story, error) {
	story.CreatedAt = r.timeProvider.Now()
	res, err := r.col.InsertOne(ctx, story)
	if err != nil {
		return model.Story{}, fmt.Errorf("insert story: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		story.ID = oid
	}
	return story, nil
}

// UpdateContent sets the title and content of a story.
func (r *StoryRepo) UpdateContent(ctx context.Context, id, title, content string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "title", Value: title},
			{Key: "content", Value: content},
		}}},
	)
	if err != nil {
		return fmt.Errorf("update story: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// ToggleImage removes the image URL if the story already carries it,
// otherwise appends it.
func (r *StoryRepo) ToggleImage(ctx context.Context, id, imgURL string) error {
	story, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	update := toggleImageUpdate(story.Images, imgURL)
	if _, err := r.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: story.ID}}, update); err != nil {
		return fmt.Errorf("toggle story image: %w", err)
	}
	return nil
}

// Delete removes the story with the given object ID.
func (r *StoryRepo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// CountByAuthor counts stories authored by the given email.
func (r *StoryRepo) CountByAuthor(ctx context.Context, email string) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{{Key: "addedBy", Value: email}})
	if err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return n, nil
}

// EstimatedCount returns the estimated number of stories, for dashboards.
func (r *StoryRepo) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return n, nil
}

// toggleImageUpdate picks $pull when the URL is already present, $push
// otherwise.
func toggleImageUpdate(images []string, imgURL string) bson.D {
	op := "$push"
	if slices.Contains(images, imgURL) {
		op = "$pull"
	}
	return bson.D{{Key: op, Value: bson.D{{Key: "images", Value: imgURL}}}}
}
