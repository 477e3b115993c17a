package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Application is a request from a tourist to become a tour guide.
type Application struct {
	ID             bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	Title          string        `bson:"title"          json:"title"`
	Reason         string        `bson:"reason"         json:"reason"`
	CVLink         string        `bson:"cvLink"         json:"cvLink"`
	ApplicantEmail string        `bson:"applicantEmail" json:"applicantEmail"`
	ApplicantName  string        `bson:"applicantName"  json:"applicantName"`
	PhotoURL       string        `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	AppliedAt      time.Time     `bson:"appliedAt"      json:"appliedAt"`
}

// ApplicationWithRole is an application joined with the applicant's current
// role and email from the user collection, for the admin review queue.
type ApplicationWithRole struct {
	Application `bson:",inline"`
	Role        string `bson:"role,omitempty" json:"role,omitempty"`
}
