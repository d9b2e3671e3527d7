// Package apperrors defines the service error taxonomy. The HTTP layer maps
// these centrally; services never pick status codes themselves.
package apperrors

import "fmt"

// ValidationError is user-correctable bad input, surfaced as 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is an unknown id, surfaced as 404.
type NotFoundError struct {
	Resource string
	Id       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Id)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, Id: id}
}

// UpstreamError is a database or model-service failure. Surfaced as 500 with
// a generic message; the detail is logged, never exposed.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstream(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}
