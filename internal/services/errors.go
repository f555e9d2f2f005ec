package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConnectivity  = errors.New("connectivity failure")
	ErrExternalTool  = errors.New("external service error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Exit codes returned by the CLI for the error classes above.
const (
	ExitFailure       = 1
	ExitConnectivity  = 2
	ExitConfiguration = 3
)

// Wrap builds an error message that names the failing component and operation
// while tagging it with marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConnectivity):
		return ExitConnectivity
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrValidation):
		return ExitConfiguration
	default:
		return ExitFailure
	}
}

// IsFatal reports whether err must abort a run. Lookup and formatting
// problems are recoverable; connectivity and configuration problems are not.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrConnectivity) || errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
