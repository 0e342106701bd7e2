package profile

import (
	"fmt"
	"strings"
)

// Error represents a profile store failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UnknownKeyError is returned when a write names keys outside the recognized set
type UnknownKeyError struct {
	Keys []string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown profile keys: %s", strings.Join(e.Keys, ", "))
}

// ValidationError represents an invalid profile value
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid profile: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid profile: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
