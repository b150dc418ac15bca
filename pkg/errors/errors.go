package errors

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by browser drivers for features they cannot provide
// (e.g. screenshots over plain HTTP).
var ErrUnsupported = errors.New("operation not supported by driver")

type ResourceNotFoundError struct {
	resource string
	id       string
}

func (e *ResourceNotFoundError) Error() string {
	if e.id == "" {
		return fmt.Sprintf("%s not found", e.resource)
	}
	return fmt.Sprintf("%s %q not found", e.resource, e.id)
}

func NewRunNotFoundError(id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{resource: "run", id: id}
}

func NewMetricsNotFoundError() *ResourceNotFoundError {
	return &ResourceNotFoundError{resource: "metrics"}
}

func NewFixtureNotFoundError(key string) *ResourceNotFoundError {
	return &ResourceNotFoundError{resource: "fixture", id: key}
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

type ValidationError struct {
	field  string
	reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.field, e.reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{field: field, reason: reason}
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

type UnauthorizedError struct {
	reason string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.reason)
}

func NewUnauthorizedError(reason string) *UnauthorizedError {
	return &UnauthorizedError{reason: reason}
}

func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

type RunInProgressError struct {
	id string
}

func (e *RunInProgressError) Error() string {
	return fmt.Sprintf("run %s is already in progress", e.id)
}

func NewRunInProgressError(id string) *RunInProgressError {
	return &RunInProgressError{id: id}
}

func IsRunInProgressError(err error) bool {
	var e *RunInProgressError
	return errors.As(err, &e)
}
