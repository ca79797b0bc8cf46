package service

import "errors"

// Service layer errors. Handlers classify these into HTTP statuses; nothing
// below is retried automatically.
var (
	// conflict: invariant violations
	ErrActiveBookingExists = errors.New("user already has an active booking")
	ErrBookingInProgress   = errors.New("another booking operation for this user is in progress")

	// not found
	ErrBookingNotFound     = errors.New("booking not found")
	ErrQuoteNotFound       = errors.New("quote request not found")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrGroupNotFound       = errors.New("package group not found")
	ErrUserNotFound        = errors.New("user not found")

	// authorization
	ErrNotOwner = errors.New("caller does not own this resource")

	// validation
	ErrEmptyPackage = errors.New("package is empty")

	// admin allow-list
	ErrProtectedAdmin = errors.New("protected admin entry cannot be revoked")
)
