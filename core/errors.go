package core

import "errors"

// Record and edit-form violations. Each is a single human-readable message
// suitable for inline display next to the offending field; none of these is
// ever sent to the auction service.
var (
	ErrNegativeStartPrice = errors.New("start price must not be negative")
	ErrBadStartPrice      = errors.New("start price must be a positive amount")
	ErrBadReservePrice    = errors.New("reserve price must be a non-negative amount")
	ErrReserveBelowStart  = errors.New("reserve price must not be below start price")
	ErrNegativeIncrement  = errors.New("minimum increment must not be negative")
	ErrBadIncrement       = errors.New("minimum increment must be a non-negative amount")
	ErrMissingStartAt     = errors.New("start time is required and must be a valid date")
	ErrMissingEndAt       = errors.New("end time is required and must be a valid date")
	ErrEndNotAfterStart   = errors.New("end time must be after start time")
)
