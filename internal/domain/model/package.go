package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TourPackage is an offered tour.
type TourPackage struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title"              json:"title"`
	TourType    string        `bson:"tourType,omitempty" json:"tourType,omitempty"`
	Price       float64       `bson:"price"              json:"price"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Images      []string      `bson:"images,omitempty"   json:"images,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt"          json:"createdAt"`
}
