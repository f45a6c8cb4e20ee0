// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"

	"github.com/coverage-analysis/pkg/model"
)

// Error codes for the application.
const (
	CodeUnknown       = "UNKNOWN_ERROR"
	CodeFileNotFound  = "FILE_NOT_FOUND"
	CodeFileAccess    = "FILE_ACCESS_DENIED"
	CodeParseError    = "PARSE_ERROR"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeOutOfMemory   = "OUT_OF_MEMORY"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeDownloadError = "DOWNLOAD_ERROR"
	CodeUploadError   = "UPLOAD_ERROR"
	CodeConfigError   = "CONFIG_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrFileNotFound  = New(CodeFileNotFound, "file does not exist")
	ErrFileAccess    = New(CodeFileAccess, "file access denied")
	ErrParseError    = New(CodeParseError, "parse error")
	ErrInvalidFormat = New(CodeInvalidFormat, "invalid file format")
	ErrOutOfMemory   = New(CodeOutOfMemory, "out of memory")
	ErrInvalidInput  = New(CodeInvalidInput, "invalid input")
	ErrDatabaseError = New(CodeDatabaseError, "database error")
	ErrDownloadError = New(CodeDownloadError, "download error")
	ErrUploadError   = New(CodeUploadError, "upload error")
	ErrConfigError   = New(CodeConfigError, "configuration error")
)

// IsFileNotFound checks if the error is a missing file error.
func IsFileNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

// IsParseError checks if the error is a parse error.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParseError)
}

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// ResultCode maps an error to the engine's external result code.
func ResultCode(err error) model.ResultCode {
	if err == nil {
		return model.Success
	}
	switch GetErrorCode(err) {
	case CodeFileNotFound:
		return model.FileNotFound
	case CodeFileAccess:
		return model.FileAccessDenied
	case CodeParseError:
		return model.ParseFailed
	case CodeInvalidFormat:
		return model.InvalidFormat
	case CodeOutOfMemory:
		return model.OutOfMemory
	case CodeInvalidInput:
		return model.InvalidParameter
	default:
		return model.ParseFailed
	}
}

// FromResultCode maps an engine result code back to an AppError, or
// nil for Success.
func FromResultCode(code model.ResultCode) *AppError {
	switch code {
	case model.Success:
		return nil
	case model.FileNotFound:
		return ErrFileNotFound
	case model.FileAccessDenied:
		return ErrFileAccess
	case model.ParseFailed:
		return ErrParseError
	case model.InvalidFormat:
		return ErrInvalidFormat
	case model.OutOfMemory:
		return ErrOutOfMemory
	case model.InvalidParameter:
		return ErrInvalidInput
	default:
		return New(CodeUnknown, code.Message())
	}
}
