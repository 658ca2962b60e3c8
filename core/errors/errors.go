package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrConfiguration      ErrorCode = "CONFIGURATION_ERROR"
	ErrStorage            ErrorCode = "STORAGE_ERROR"
	ErrUpload             ErrorCode = "UPLOAD_ERROR"
	ErrRemote             ErrorCode = "REMOTE_ERROR"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError is the error type carried from services to the HTTP boundary.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError with the same code, so callers can write
// errors.Is(err, errors.NotFound("")).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func Validation(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

func Configuration(message string) *AppError {
	return NewAppError(ErrConfiguration, message, nil)
}

func Storage(message string, err error) *AppError {
	return NewAppError(ErrStorage, message, err)
}

func Upload(message string, err error) *AppError {
	return NewAppError(ErrUpload, message, err)
}

func Remote(message string, err error) *AppError {
	return NewAppError(ErrRemote, message, err)
}

// CodeOf returns the code of the outermost AppError in err's chain,
// or ErrInternalServer when there is none.
func CodeOf(err error) ErrorCode {
	var ae *AppError
	if stderrors.As(err, &ae) && ae != nil {
		return ae.Code
	}
	return ErrInternalServer
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if ae, ok := err.(*AppError); ok && ae.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func New(message string) error {
	return stderrors.New(message)
}
