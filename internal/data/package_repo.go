package data

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tourdesh/tourdesh-api/internal/domain/model"
)

// PackageRepo provides document operations over the packages collection.
type PackageRepo struct {
	col          *mongo.Collection
	timeProvider TimeProvider
}

// NewPackageRepo creates a new PackageRepo.
func NewPackageRepo(db *mongo.Database) *PackageRepo {
	return &PackageRepo{col: db.Collection("packages"), timeProvider: &RealTimeProvider{}}
}

// List returns every tour package.
func (r *PackageRepo) List(ctx context.Context) ([]model.TourPackage, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	var packages []model.TourPackage
	if err := cur.All(ctx, &packages); err != nil {
		return nil, fmt.Errorf("decode packages: %w", err)
	}
	return packages, nil
}

// FindByID returns the package with the given object ID.
func (r *PackageRepo) FindByID(ctx context.Context, id string) (model.TourPackage, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.TourPackage{}, ErrInvalidID
	}
	var pkg model.TourPackage
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&pkg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.TourPackage{}, ErrPackageNotFound
	}
	if err != nil {
		return model.TourPackage{}, fmt.Errorf("find package: %w", err)
	}
	return pkg, nil
}

// Create inserts a new tour package.
func (r *PackageRepo) Create(ctx context.Context, pkg model.TourPackage) (model.TourPackage, error) {
	pkg.CreatedAt = r.timeProvider.Now()
	res, err := r.col.InsertOne(ctx, pkg)
	if err != nil {
		return model.TourPackage{}, fmt.Errorf("insert package: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		pkg.ID = oid
	}
	return pkg, nil
}

// EstimatedCount returns the estimated number of packages, for dashboards.
func (r *PackageRepo) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count packages: %w", err)
	}
	return n, nil
}
