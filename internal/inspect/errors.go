package inspect

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes inspection failures.
type ErrorCode string

const (
	// ErrCodeNodeNotFound indicates the ref could not be resolved to a node.
	ErrCodeNodeNotFound ErrorCode = "NODE_NOT_FOUND"

	// ErrCodeStyleUnavailable indicates computed style could not be read.
	ErrCodeStyleUnavailable ErrorCode = "STYLE_UNAVAILABLE"

	// ErrCodeSimulationFailed indicates the clone simulation failed.
	// The adapter guarantees the clone was still released.
	ErrCodeSimulationFailed ErrorCode = "SIMULATION_FAILED"
)

// InspectError is a structured inspection failure. Checkers treat every
// InspectError as recoverable: the affected element degrades to a
// conservative result and the batch continues.
type InspectError struct {
	Code    ErrorCode
	Message string
	NodeKey string
	Err     error
}

// Error implements the error interface.
func (e *InspectError) Error() string {
	if e.NodeKey != "" {
		return fmt.Sprintf("%s: %s (node=%s)", e.Code, e.Message, e.NodeKey)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *InspectError) Unwrap() error { return e.Err }

// NewNodeNotFound creates a NODE_NOT_FOUND error for the given key.
func NewNodeNotFound(nodeKey string) *InspectError {
	return &InspectError{
		Code:    ErrCodeNodeNotFound,
		Message: "node reference could not be resolved",
		NodeKey: nodeKey,
	}
}

// NewSimulationFailed wraps a failure inside a clone simulation.
func NewSimulationFailed(nodeKey string, err error) *InspectError {
	return &InspectError{
		Code:    ErrCodeSimulationFailed,
		Message: "state simulation failed",
		NodeKey: nodeKey,
		Err:     err,
	}
}

// IsNodeNotFound reports whether err is a NODE_NOT_FOUND inspection error.
// Uses errors.As to handle wrapped errors.
func IsNodeNotFound(err error) bool {
	var ie *InspectError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeNodeNotFound
	}
	return false
}

// IsSimulationFailed reports whether err is a SIMULATION_FAILED error.
func IsSimulationFailed(err error) bool {
	var ie *InspectError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeSimulationFailed
	}
	return false
}
