package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
)

// UserStatus represents the account status of a user.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User is the persisted account record. Email is the unique, case-sensitive
// match key used by the session issuer and the role gate. Users are never
// hard-deleted.
type User struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email       string          `bson:"email"                json:"email"`
	DisplayName string          `bson:"displayName"          json:"displayName"`
	PhotoURL    string          `bson:"photoURL,omitempty"   json:"photoURL,omitempty"`
	Role        domainauth.Role `bson:"role"                 json:"role"`
	Status      UserStatus      `bson:"status"               json:"status"`
	LoginCount  int64           `bson:"loginCount"           json:"loginCount"`
	CreatedAt   time.Time       `bson:"createdAt"            json:"createdAt"`
}
