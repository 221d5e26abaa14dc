// Package apperr defines the error envelope returned by every GraphQL
// operation: a human-readable message, a stable category code and, for
// validation failures, the per-field details.
package apperr

import (
	"errors"

	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/server/validation"
)

type Code string

const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeConflict        Code = "CONFLICT"
	CodeNotFound        Code = "NOT_FOUND"
)

const (
	MsgInvalidCredentials = "invalid credentials"
	MsgEmployeeNotFound   = "employee not found"
	MsgFilterRequired     = "designation or department is required"
)

type Error struct {
	Code    Code
	Message string
	Details validation.Errors
	Err     error
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Err: err}
}

// Validation builds an envelope whose message is the joined summary of errs.
func Validation(code Code, errs validation.Errors) *Error {
	return &Error{Code: code, Message: errs.Error(), Details: errs, Err: errs}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions is read by the GraphQL executor and rendered under "extensions".
func (e *Error) Extensions() map[string]any {
	var details any
	if len(e.Details) > 0 {
		details = e.Details
	}
	return map[string]any{
		"code":    string(e.Code),
		"details": details,
	}
}

// From converts any error into an *Error. An existing *Error passes through
// unchanged; duplicate keys become CONFLICT and missing records NOT_FOUND;
// validation failures and everything else take the fallback code.
func From(err error, fallback Code) *Error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	var dup *common.DuplicateKeyError
	if errors.As(err, &dup) {
		return Wrap(CodeConflict, dup)
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return Validation(fallback, verrs)
	}

	if errors.Is(err, common.ErrorNotFound) {
		return &Error{Code: CodeNotFound, Message: err.Error(), Err: err}
	}

	return Wrap(fallback, err)
}
