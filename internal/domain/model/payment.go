package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Payment is the persisted record of a confirmed payment. Amount is in the
// package's display currency units (not cents); the cents conversion happens
// only at the payment-provider boundary.
type Payment struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID     bson.ObjectID `bson:"bookingId"     json:"bookingId"`
	PackageID     bson.ObjectID `bson:"packageId"     json:"packageId"`
	PaymentBy     string        `bson:"paymentBy"     json:"paymentBy"`
	Amount        float64       `bson:"amount"        json:"amount"`
	TransactionID string        `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time     `bson:"createdAt"     json:"createdAt"`
}
