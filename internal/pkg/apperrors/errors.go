package apperrors

import "errors"

// Common errors
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Application (enrollment record) errors
var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application already exists")
	ErrInvalidApplicationStatus = errors.New("invalid application status")
)

// Document errors
var (
	ErrDocumentNotFound         = errors.New("document not found")
	ErrDocumentNotResubmittable = errors.New("document already submitted and not rejected")
	ErrInvalidDecision          = errors.New("invalid review decision")
	ErrRejectionReasonRequired  = errors.New("rejection reason required")
)

// Clearance form errors
var (
	ErrFormNotFound      = errors.New("clearance form not found")
	ErrUnknownFormType   = errors.New("unknown form type")
	ErrFormLocked        = errors.New("form is locked until upstream approval")
	ErrInvalidTransition = errors.New("invalid form state transition")
)

// Deadline errors
var (
	ErrDeadlineInPast = errors.New("deadline must not be in the past")
	ErrDeadlinePassed = errors.New("submission deadline has passed")
)

// CustomError pairs a sentinel with a caller-facing message. Matching
// stays sentinel-based through Unwrap; the message reaches the client.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
