package domain

import "errors"

var (
	// ErrUserExists is returned when a username is already taken. The store
	// returns it for unique index violations as well as for the pre-check.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned by the store on a lookup miss.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid input")
)
