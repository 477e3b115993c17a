package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusInReview BookingStatus = "in review"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusRejected BookingStatus = "rejected"
)

// Booking is a tourist's reservation against a package, assigned to a guide.
// TouristEmail is always set server-side from the caller's context.
type Booking struct {
	ID           bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	PackageID    bson.ObjectID `bson:"packageId"      json:"packageId"`
	PackageTitle string        `bson:"packageTitle,omitempty" json:"packageTitle,omitempty"`
	TouristEmail string        `bson:"touristEmail"   json:"touristEmail"`
	GuideEmail   string        `bson:"guideEmail"     json:"guideEmail"`
	TourDate     time.Time     `bson:"tourDate"       json:"tourDate"`
	Price        float64       `bson:"price"          json:"price"`
	Status       BookingStatus `bson:"status"         json:"status"`
	CreatedAt    time.Time     `bson:"createdAt"      json:"createdAt"`
}
