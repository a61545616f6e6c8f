package errors

import (
	"errors"
	"fmt"
)

// Failure taxonomy of the triage flow. None of these are fatal: permission
// problems route to the unauthorized state, empty results to the empty state,
// image-load failures degrade to a placeholder, and deletion failures leave
// the pending queue intact for a retried commit.
var (
	ErrPermissionDenied = errors.New("photo library access denied")
	ErrEmptyResult      = errors.New("no assets in collection")
	ErrImageLoad        = errors.New("failed to load image")
	ErrDeletionFailed   = errors.New("failed to delete assets")
	ErrEmptyBatch       = errors.New("empty deletion batch")
	ErrStaleResponse    = errors.New("response for superseded request")
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join wraps errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsPermissionDenied returns true if the error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsEmptyResult returns true if the error is an empty result error
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// IsImageLoad returns true if the error is an image load error
func IsImageLoad(err error) bool {
	return errors.Is(err, ErrImageLoad)
}

// IsDeletionFailed returns true if the error is a deletion failure
func IsDeletionFailed(err error) bool {
	return errors.Is(err, ErrDeletionFailed)
}
