package model

import "errors"

var (
	// ErrScoreNotFound indicates that no row exists yet for the user and span.
	ErrScoreNotFound = errors.New("score not found")
	// ErrInvalidTimeSpan indicates a span other than all_time or weekly.
	ErrInvalidTimeSpan = errors.New("invalid time span")
	// ErrInvalidPoints indicates a negative amount.
	ErrInvalidPoints = errors.New("points must be non-negative")
	// ErrInvalidUserID indicates an empty user id.
	ErrInvalidUserID = errors.New("invalid user ID")
	// ErrUnknownUser indicates that the user referenced by a credit does not exist.
	ErrUnknownUser = errors.New("user does not exist")
)
