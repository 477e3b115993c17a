package data

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when registering an email that already has an account.
	ErrUserExists = errors.New("user already exists")
	// ErrPackageNotFound is returned when a tour package is not found.
	ErrPackageNotFound = errors.New("package not found")
	// ErrStoryNotFound is returned when a story is not found.
	ErrStoryNotFound = errors.New("story not found")
	// ErrBookingNotFound is returned when a booking is not found.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrInvalidID is returned when an identifier is not a valid object ID.
	ErrInvalidID = errors.New("invalid object id")
)
