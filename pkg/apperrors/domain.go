package apperrors

import (
	"net/http"
)

// Factories and predeclared variables for the lifecycle domains.

// ErrNotFound converts a repository miss into the caller-facing 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists covers one-shot invariants: duplicate application,
// second booking for an application, second review for a booking.
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrInvalidState rejects a transition that the relevant state table does
// not permit, or an unmet status precondition ("job not open").
func ErrInvalidState(domain, message string) *AppError {
	return New(CodeInvalidState, domain, message, http.StatusConflict)
}

// ErrValidation rejects malformed input before any write is attempted.
func ErrValidation(domain, message string) *AppError {
	return New(CodeValidationFailed, domain, message, http.StatusBadRequest)
}

// ErrForbidden rejects a caller that lacks ownership or role for an action.
func ErrForbidden(domain, message string) *AppError {
	return New(CodeForbidden, domain, message, http.StatusForbidden)
}

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrWorkerNotVerified = New(
	CodeForbidden,
	"auth",
	"Worker account is not verified",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
