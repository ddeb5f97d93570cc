package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type for collectionkit.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError by code, so errors.Is(err, &AppError{Code: c})
// works without comparing messages.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// InvalidArgument creates an AppError for an argument that was rejected before
// any work started.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	msg := fmt.Sprintf("invalid argument: %s", reason)
	if field != "" {
		msg = fmt.Sprintf("invalid argument %s: %s", field, reason)
	}
	return &AppError{Code: ErrCodeInvalidArgument, Message: msg, Details: details}
}

// Canceled creates an AppError for work interrupted by its context.
func Canceled(cause error) *AppError {
	return &AppError{Code: ErrCodeCanceled, Message: "operation canceled", Cause: cause}
}

// Internal creates an AppError for a broken internal invariant.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "internal invariant violated", Cause: cause}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err, or any error it wraps, is an AppError with code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
