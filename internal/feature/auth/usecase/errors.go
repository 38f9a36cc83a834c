// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists is returned when attempting to register a username that is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned during login when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidRefreshToken is returned when a refresh token is unknown, revoked or expired.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
