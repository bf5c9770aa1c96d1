package types

import "fmt"

// ToolError is the uniform failure envelope surfaced by every tool call:
// an HTTP-style status code plus a human-readable message. Validation
// failures, upstream errors, and transport failures all collapse into
// this one shape before crossing the tool boundary.
type ToolError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// NewToolError builds a ToolError from a status code and message.
func NewToolError(code int, message string) *ToolError {
	return &ToolError{Code: code, Message: message}
}

// Errorf builds a ToolError with a formatted message.
func Errorf(code int, format string, args ...interface{}) *ToolError {
	return &ToolError{Code: code, Message: fmt.Sprintf(format, args...)}
}
