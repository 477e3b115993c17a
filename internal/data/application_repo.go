package data

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tourdesh/tourdesh-api/internal/domain/model"
)

// ApplicationRepo provides document operations over the applications
// collection.
type ApplicationRepo struct {
	col          *mongo.Collection
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *mongo.Database) *ApplicationRepo {
	return &ApplicationRepo{col: db.Collection("applications"), timeProvider: &RealTimeProvider{}}
}

// ListWithRoles returns every application with the applicant's current role
// joined in from the user collection. Applications whose user record is
// missing still appear, with an empty role.
func (r *ApplicationRepo) ListWithRoles(ctx context.Context) ([]model.ApplicationWithRole, error) {
	cur, err := r.col.Aggregate(ctx, applicationRolePipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate applications: %w", err)
	}
	var apps []model.ApplicationWithRole
	if err := cur.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return apps, nil
}

// Create inserts a new application.
func (r *ApplicationRepo) Create(ctx context.Context, app model.Application) (model.Application, error) {
	if app.AppliedAt.IsZero() {
		app.AppliedAt = r.timeProvider.Now()
	}
	res, err := r.col.InsertOne(ctx, app)
	if err != nil {
		return model.Application{}, fmt.Errorf("insert application: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		app.ID = oid
	}
	return app, nil
}

// Delete removes the application with the given object ID.
func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// applicationRolePipeline joins each application with its user record by
// applicant email, flattens the match, and lifts the role out of it.
func applicationRolePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "applicantEmail"},
			{Key: "foreignField", Value: "email"},
			{Key: "as", Value: "userInfo"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$userInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "role", Value: "$userInfo.role"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "userInfo", Value: 0},
		}}},
	}
}
