package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations
var (
	// Authentication
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Participant validation
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("email or whatsapp already registered")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrEmailRequired       = errors.New("email is required")
	ErrEmailInvalid        = errors.New("email format is invalid")
	ErrWhatsAppRequired    = errors.New("whatsapp number is required")
	ErrNoReferrals         = errors.New("referral list is empty")

	// Prize validation
	ErrPrizeNotFound           = errors.New("prize not found")
	ErrPrizeNameRequired       = errors.New("prize name is required")
	ErrPrizeKindInvalid        = errors.New("invalid prize kind")
	ErrPrizeProbabilityInvalid = errors.New("prize probability must be between 1 and 100")

	// Draw resolution
	ErrInvalidRoster         = errors.New("roster size must be at least 1")
	ErrRosterTooSmall        = errors.New("roster is smaller than the requested size")
	ErrInvalidSeed           = errors.New("seed is not a valid numeric token")
	ErrWinnerIndexOutOfRange = errors.New("winner index outside roster bounds")
	ErrResolutionNotFound    = errors.New("no draw recorded for this seed")

	// Commands
	ErrCommandKindRequired = errors.New("command kind is required")

	// Spin history
	ErrSpinParticipantRequired = errors.New("spin participant is required")
	ErrSpinPrizeRequired       = errors.New("spin prize is required")

	// Schedules
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrScheduleDateInvalid = errors.New("schedule date must be YYYY-MM-DD")
	ErrScheduleTimeInvalid = errors.New("schedule times must be a valid HH:MM range")

	// Storage
	ErrPersistence = errors.New("storage unavailable")

	// Generic
	ErrNotFound    = errors.New("resource not found")
	ErrInternal    = errors.New("internal server error")
	ErrBadRequest  = errors.New("bad request")
	ErrConflict    = errors.New("resource conflict")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Err:        ErrUnauthorized,
		Message:    message,
		Code:       "UNAUTHORIZED",
		StatusCode: 401,
	}
}

func NewNotFoundError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "NOT_FOUND",
		StatusCode: 404,
	}
}

func NewConflictError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "CONFLICT",
		StatusCode: 409,
	}
}

func NewValidationError(err error, message string, details map[string]interface{}) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "VALIDATION_ERROR",
		StatusCode: 422,
		Details:    details,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}

// ValidationErrors holds multiple field validation errors
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make(map[string][]string),
	}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) have errors", len(v.Errors))
}
