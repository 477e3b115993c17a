package data

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tourdesh/tourdesh-api/internal/domain/model"
)

// BookingRepo provides document operations over the bookings collection.
type BookingRepo struct {
	col          *mongo.Collection
	timeProvider TimeProvider
}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(db *mongo.Database) *BookingRepo {
	return &BookingRepo{col: db.Collection("bookings"), timeProvider: &RealTimeProvider{}}
}

// BookingFilter narrows booking listings. Empty fields match everything.
type BookingFilter struct {
	TouristEmail string
	GuideEmail   string
}

// List returns bookings matching the filter.
func (r *BookingRepo) List(ctx context.Context, filter BookingFilter) ([]model.Booking, error) {
	cur, err := r.col.Find(ctx, bookingListFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	var bookings []model.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// FindByID returns the booking with the given object ID.
func (r *BookingRepo) FindByID(ctx context.Context, id string) (model.Booking, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.Booking{}, ErrInvalidID
	}
	var booking model.Booking
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}

// Create inserts a new booking.
func (r *BookingRepo) Create(ctx context.Context, booking model.Booking) (model.Booking, error) {
	if booking.Status == "" {
		booking.Status = model.BookingStatusPending
	}
	booking.CreatedAt = r.timeProvider.Now()

	res, err := r.col.InsertOne(ctx, booking)
	if err != nil {
		return model.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		booking.ID = oid
	}
	return booking, nil
}

// UpdateStatus sets the status of a booking.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}},
	)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Delete removes the booking with the given object ID.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CountByStatus groups the caller's bookings by status. Absent statuses are
// simply missing from the map; callers treat missing as zero.
func (r *BookingRepo) CountByStatus(ctx context.Context, touristEmail string) (map[string]int64, error) {
	cur, err := r.col.Aggregate(ctx, bookingStatusPipeline(touristEmail))
	if err != nil {
		return nil, fmt.Errorf("aggregate bookings: %w", err)
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode booking counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

func bookingListFilter(filter BookingFilter) bson.D {
	query := bson.D{}
	if filter.TouristEmail != "" {
		query = append(query, bson.E{Key: "touristEmail", Value: filter.TouristEmail})
	}
	if filter.GuideEmail != "" {
		query = append(query, bson.E{Key: "guideEmail", Value: filter.GuideEmail})
	}
	return query
}

func bookingStatusPipeline(touristEmail string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "touristEmail", Value: touristEmail}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}
