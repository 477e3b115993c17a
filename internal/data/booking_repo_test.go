package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestBookingListFilter(t *testing.T) {
	t.Run("empty filter matches all", func(t *testing.T) {
		assert.Empty(t, bookingListFilter(BookingFilter{}))
	})

	t.Run("tourist only", func(t *testing.T) {
		filter := bookingListFilter(BookingFilter{TouristEmail: "t@example.com"})
		assert.Equal(t, bson.D{{Key: "touristEmail", Value: "t@example.com"}}, filter)
	})

	t.Run("both fields", func(t *testing.T) {
		filter := bookingListFilter(BookingFilter{TouristEmail: "t@example.com", GuideEmail: "g@example.com"})
		assert.Len(t, filter, 2)
		assert.Equal(t, "guideEmail", filter[1].Key)
	})
}

func TestBookingStatusPipeline(t *testing.T) {
	pipeline := bookingStatusPipeline("t@example.com")
	assert.Len(t, pipeline, 2)

	match := pipeline[0][0]
	assert.Equal(t, "$match", match.Key)
	assert.Equal(t, bson.D{{Key: "touristEmail", Value: "t@example.com"}}, match.Value)

	group := pipeline[1][0]
	assert.Equal(t, "$group", group.Key)
	groupDoc := group.Value.(bson.D)
	assert.Equal(t, "$status", groupDoc[0].Value)
}
