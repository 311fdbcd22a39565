package domain

import (
	"errors"
	"fmt"
)

// Exit codes carried by the two caller-facing error classes. Storage and
// other environment failures are reported separately (see pkg/apierrors).
const (
	ExitCodeValidation = 1
	ExitCodeNotFound   = 2
)

// ValidationError reports malformed input or a structural invariant
// violation: empty or oversized description, unknown priority, ambiguous
// short id, a cycle or depth bound in the task tree.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TaskNotFoundError reports an id or short-id prefix that resolves to no task.
type TaskNotFoundError struct {
	Message string
}

func (e *TaskNotFoundError) Error() string {
	return e.Message
}

func NewTaskNotFound(format string, args ...any) error {
	return &TaskNotFoundError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nfe *TaskNotFoundError
	return errors.As(err, &nfe)
}
