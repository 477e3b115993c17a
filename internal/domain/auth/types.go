package auth

// Package auth contains domain-level types for authentication and
// authorization. It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role. Kept in string form
// for easy persistence in the user collection and in token claims.
type Role string

const (
	RoleTourist   Role = "tourist"
	RoleTourGuide Role = "tour guide"
	RoleAdmin     Role = "admin"
)

// DefaultRole is assigned to newly registered users.
const DefaultRole = RoleTourist

// DefaultSessionTTL bounds how long a session credential stays valid.
// The embedded role is a snapshot at issuance time; privilege-sensitive
// routes re-read the role from the store, so this TTL bounds only
// authentication staleness.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Valid reports whether r is one of the known application roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTourist, RoleTourGuide, RoleAdmin:
		return true
	}
	return false
}

// Identity represents the verified principal returned by the identity
// provider. It lives for a single request and is never persisted.
type Identity struct {
	SubjectID string // stable provider subject (Firebase uid)
	Name      string
	Email     string
}

// Session carries the claims embedded in an issued session credential.
type Session struct {
	SubjectID string    `json:"subject_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Context is the per-request authorization context derived from a verified
// session credential. Handlers and the role gate consume it.
type Context struct {
	SubjectID string
	Email     string
	Role      Role
}

// IsAdmin reports whether the context carries the admin role claim.
// Authorization never consults this; the role gate and the
// owner-or-admin paths all re-read the authoritative role from the
// user collection.
func (c Context) IsAdmin() bool { return c.Role == RoleAdmin }
