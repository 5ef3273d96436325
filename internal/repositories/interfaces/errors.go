package interfaces

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateCode is returned when an insert trips the unique code
	// index.
	ErrDuplicateCode = errors.New("referral code already exists")

	// ErrDuplicateEmail is returned when an insert trips the unique email
	// index.
	ErrDuplicateEmail = errors.New("email already registered")
)
