package dto

import "fmt"

// InputError rejects a request before any credit is spent.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func NewInputError(format string, args ...interface{}) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError maps to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// StorageError wraps persistence failures so the handler can report them
// without leaking driver details.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
