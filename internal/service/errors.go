package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== User Errors =====
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("login name or email already registered")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 128 characters")
)

// ===== Game Errors =====
var (
	ErrGameNotFound = errors.New("game not found")
)

// ===== Availability Errors =====
var (
	ErrAvailabilityNotFound = errors.New("availability not found")
)
