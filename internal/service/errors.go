package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when login credentials don't match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive is returned when the account exists but is not active
	ErrAccountInactive = errors.New("account is not active")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrCompanyNotFound is returned when a company is not found
	ErrCompanyNotFound = errors.New("company not found")

	// ErrAreaNotFound is returned when an area is not found
	ErrAreaNotFound = errors.New("area not found")

	// ErrInvalidAccessLevel is returned when an invalid access level is provided
	ErrInvalidAccessLevel = errors.New("invalid access level")
)
