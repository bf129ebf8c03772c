package serviceerror

import (
	"errors"
	"fmt"
)

type ServiceErrorType string

const (
	ClientErrorType ServiceErrorType = "client_error"
	ServerErrorType ServiceErrorType = "server_error"
)

// Kind classifies a ServiceError independently of its code and description.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInvalidState Kind = "invalid_state"
	KindStore        Kind = "store"
)

type ServiceError struct {
	Kind             Kind             `json:"-"`
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Name             string           `json:"error"`
	ErrorDescription string           `json:"error_description,omitempty"`
	cause            error
}

var (
	ValidationError = ServiceError{
		Kind:             KindValidation,
		Type:             ClientErrorType,
		Code:             "RMS-4001",
		Name:             "validation_error",
		ErrorDescription: "Validation failed",
	}

	NotFoundError = ServiceError{
		Kind:             KindNotFound,
		Type:             ClientErrorType,
		Code:             "RMS-4004",
		Name:             "resource_not_found",
		ErrorDescription: "Resource not found",
	}

	ConflictError = ServiceError{
		Kind:             KindConflict,
		Type:             ClientErrorType,
		Code:             "RMS-4009",
		Name:             "conflict",
		ErrorDescription: "Request conflicts with an existing record",
	}

	InvalidStateError = ServiceError{
		Kind:             KindInvalidState,
		Type:             ClientErrorType,
		Code:             "RMS-4022",
		Name:             "invalid_state",
		ErrorDescription: "The record is not in a state that allows this action",
	}

	StoreError = ServiceError{
		Kind:             KindStore,
		Type:             ServerErrorType,
		Code:             "RMS-5001",
		Name:             "store_error",
		ErrorDescription: "A database error occurred",
	}
)

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.ErrorDescription, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.ErrorDescription)
}

// Unwrap returns the underlying cause, if any.
func (e *ServiceError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a ServiceError of the same kind.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	return ok && t.Kind == e.Kind
}

func CustomServiceError(baseError ServiceError, description string) *ServiceError {
	return &ServiceError{
		Kind:             baseError.Kind,
		Type:             baseError.Type,
		Code:             baseError.Code,
		Name:             baseError.Name,
		ErrorDescription: description,
	}
}

// WrapServiceError builds a ServiceError of the base kind carrying cause.
func WrapServiceError(baseError ServiceError, cause error, description string) *ServiceError {
	err := CustomServiceError(baseError, description)
	err.cause = cause
	return err
}

// WithPrefix returns err with prefix prepended to its description, preserving its kind.
// Errors that are not ServiceErrors become StoreErrors.
func WithPrefix(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		out := *svcErr
		out.ErrorDescription = prefix + ": " + svcErr.ErrorDescription
		return &out
	}
	return WrapServiceError(StoreError, err, prefix)
}

// KindOf returns the kind of err, or the empty kind when err is not a ServiceError.
func KindOf(err error) Kind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ""
}

// IsKind reports whether err is a ServiceError of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ToServiceError converts any error into a ServiceError, treating unknown errors as store failures.
func ToServiceError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return WrapServiceError(StoreError, err, StoreError.ErrorDescription)
}
