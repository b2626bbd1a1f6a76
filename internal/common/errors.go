package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Movie errors
	ErrMovieNotFound = errors.New("movie not found")
	ErrNotAuthor     = errors.New("only the author may modify this movie")
	ErrSelfReaction  = errors.New("authors cannot react to their own movie")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Storage errors
	ErrStorageUnavailable = errors.New("object storage not configured")
)
