// Package diagnostics defines the error values reported by tagjs stages.
package diagnostics

import "fmt"

// ErrorCode identifies the class of a diagnostic.
type ErrorCode string

const (
	// ErrR001 is an exception thrown by the executed program, including a
	// dispatcher finding no matching overload.
	ErrR001 ErrorCode = "R001"
	// ErrR002 is an execution interrupted by timeout or cancellation.
	ErrR002 ErrorCode = "R002"
	// ErrC001 is an unreadable or invalid tagjs.yaml.
	ErrC001 ErrorCode = "C001"
)

// DiagnosticError is a located error produced while processing a file.
type DiagnosticError struct {
	Code    ErrorCode
	File    string
	Message string
	// Stack is the host stack trace, when available.
	Stack string
}

func NewError(code ErrorCode, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: [%s] %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
