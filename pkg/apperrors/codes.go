package apperrors

// ErrorCode identifies the class of an application error.
type ErrorCode string

const (
	// System failures
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
	CodeDependencyFailure ErrorCode = "DEPENDENCY_FAILURE"

	// Business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidState     ErrorCode = "INVALID_STATE"

	// Authentication and authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)
