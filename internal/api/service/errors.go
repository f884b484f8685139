package service

import "errors"

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidPeriod indicates an unknown lookback period.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrSectorNotDefined indicates the reference company has no sector.
	ErrSectorNotDefined = errors.New("sector not defined")
	// ErrEmailAlreadyUsed indicates a registration with a taken email.
	ErrEmailAlreadyUsed = errors.New("email already used")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a missing, malformed or expired token.
	ErrInvalidToken = errors.New("invalid token")
)
