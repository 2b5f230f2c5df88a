package errors

import (
	"fmt"
	"strings"

	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
)

// ValidationError is returned before any external call when submitted fields are missing or invalid
type ValidationError struct {
	msg       string
	Callbacks []callbacks.Callback
}

func NewValidationError(msg string, cbs []callbacks.Callback) *ValidationError {
	return &ValidationError{msg: msg, Callbacks: cbs}
}

func (e *ValidationError) Error() string {
	var fields []string
	for _, cb := range e.Callbacks {
		if cb.Error != "" {
			fields = append(fields, cb.Name)
		}
	}
	if len(fields) == 0 {
		return e.msg
	}
	return fmt.Sprintf("%s (%s)", e.msg, strings.Join(fields, ", "))
}

func (e *ValidationError) Message() string { return e.msg }

// ExternalCallError wraps a failure raised by the third-party system a task talks to
type ExternalCallError struct {
	msg    string
	Detail interface{}
	cause  error
}

func NewExternalCallError(msg string, cause error) *ExternalCallError {
	return &ExternalCallError{msg: msg, cause: cause}
}

func (e *ExternalCallError) WithDetail(detail interface{}) *ExternalCallError {
	e.Detail = detail
	return e
}

func (e *ExternalCallError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *ExternalCallError) Unwrap() error { return e.cause }

type TaskNotFound struct {
	task string
}

func NewTaskNotFound(task string) *TaskNotFound {
	return &TaskNotFound{task: task}
}

func (e *TaskNotFound) Error() string { return fmt.Sprintf("task %v not found", e.task) }
