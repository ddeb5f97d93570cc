// Package errors provides the structured error type used across collectionkit.
//
// Errors carry a machine-readable code so callers can tell argument problems
// apart from internal defects without matching on message text. Failures
// returned by caller-supplied operations are never wrapped in an AppError:
// they reach the caller exactly as the operation returned them.
package errors
