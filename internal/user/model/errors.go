package model

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists indicates that the user id or nickname is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidUserID indicates that the provided user ID is invalid (e.g., empty).
	ErrInvalidUserID = errors.New("invalid user ID")
	// ErrInvalidNickname indicates that the nickname is empty or too long.
	ErrInvalidNickname = errors.New("invalid nickname")
)
