package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates a caller passed an argument the
	// operation cannot accept, such as a non-positive concurrency limit.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeCanceled indicates the caller's context ended before the work finished.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates a broken internal invariant.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var knownCodes = map[ErrorCode]bool{
	ErrCodeInvalidArgument: true,
	ErrCodeCanceled:        true,
	ErrCodeInternal:        true,
}

// IsKnownCode reports whether code is one of the codes defined by this package.
func IsKnownCode(code ErrorCode) bool {
	return knownCodes[code]
}
