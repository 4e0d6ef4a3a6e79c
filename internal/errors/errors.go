// Package errors provides custom error types for the application.
package errors

import "errors"

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotFound       = errors.New("role not found")
)

// Auth errors
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenReused  = errors.New("refresh token reuse detected")
)

// Authorization errors. ErrForbidden is the single "denied" condition that
// crosses into the HTTP layer as a 403; the checkers themselves only return
// booleans.
var (
	ErrForbidden = errors.New("insufficient permissions")
)

// Client errors
var (
	ErrClientNotFound = errors.New("client not found")
)

// Note errors. Main-note violations are invalid operations, not permission
// problems: they are raised before authorization is consulted.
var (
	ErrNoteNotFound         = errors.New("note not found")
	ErrMainNoteExists       = errors.New("client already has a main note")
	ErrMainNoteUndeletable  = errors.New("the main note cannot be deleted")
	ErrMainNoteCannotHide   = errors.New("the main note cannot be hidden")
	ErrActivityQueueStalled = errors.New("activity queue is full, entry dropped")
)
