package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Story is a travel story shared by a tourist or tour guide. AddedBy is the
// author's email and is always set server-side from the caller's context.
type Story struct {
	ID        bson.ObjectID `bson:"_id,omitempty"   json:"id"`
	Title     string        `bson:"title"           json:"title"`
	Content   string        `bson:"content"         json:"content"`
	AddedBy   string        `bson:"addedBy"         json:"addedBy"`
	Images    []string      `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"       json:"createdAt"`
}
